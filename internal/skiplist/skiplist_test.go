package skiplist_test

import (
	"testing"

	"github.com/kavyanarasimhan/hotkeycache/internal/skiplist"
)

func key(s string) []byte { return []byte(s) }

func TestInsert_DuplicateReturnsFalse(t *testing.T) {
	l := skiplist.New()

	n1, ok := l.Insert(key("a"), key("1"), skiplist.EncodeTag(1, skiplist.Value))
	if !ok || n1 == nil {
		t.Fatalf("first insert should succeed")
	}

	n2, ok := l.Insert(key("a"), key("2"), skiplist.EncodeTag(2, skiplist.Value))
	if ok || n2 != nil {
		t.Fatalf("duplicate insert must return (nil, false), got (%v, %v)", n2, ok)
	}

	v, present := n1.Value()
	if !present || string(v) != "1" {
		t.Fatalf("duplicate insert must not alter the existing node, value=%q present=%v", v, present)
	}
}

func TestInsert_UniqueMembership(t *testing.T) {
	l := skiplist.New()

	for _, k := range []string{"b", "a", "c", "a", "b"} {
		l.Insert(key(k), key("v"), 0)
	}

	it := skiplist.NewIterator(l)
	var seen []string

	for it.SeekToFirst(); it.Valid(); it.Next() {
		seen = append(seen, string(it.Key()))
	}

	if len(seen) != 3 {
		t.Fatalf("expected exactly one node per distinct key, got %v", seen)
	}
}

func TestContains(t *testing.T) {
	l := skiplist.New()
	l.Insert(key("apple"), key("red"), 0)

	if !l.Contains(key("apple")) {
		t.Fatalf("expected Contains(apple) to be true")
	}

	if l.Contains(key("banana")) {
		t.Fatalf("expected Contains(banana) to be false")
	}
}

// TestOrderedTraversal inserts keys out of order and checks that forward
// iteration yields them sorted.
func TestOrderedTraversal(t *testing.T) {
	l := skiplist.New()

	for _, k := range []string{"b", "a", "c"} {
		l.Insert(key(k), key("v"), 0)
	}

	it := skiplist.NewIterator(l)

	it.SeekToFirst()

	var forward []string
	for ; it.Valid(); it.Next() {
		forward = append(forward, string(it.Key()))
	}

	want := []string{"a", "b", "c"}
	for i, w := range want {
		if forward[i] != w {
			t.Fatalf("forward order = %v, want %v", forward, want)
		}
	}

	it.Seek(key("b"))
	if !it.Valid() || string(it.Key()) != "b" {
		t.Fatalf("Seek(b) landed on %q", it.Key())
	}

	it.Prev()
	if !it.Valid() || string(it.Key()) != "a" {
		t.Fatalf("Prev() from b = %q, want a", it.Key())
	}

	it.Prev()
	if it.Valid() {
		t.Fatalf("Prev() from a should become invalid, got %q", it.Key())
	}
}

func TestSeekToLast(t *testing.T) {
	l := skiplist.New()

	it := skiplist.NewIterator(l)
	it.SeekToLast()

	if it.Valid() {
		t.Fatalf("SeekToLast on empty list must be invalid")
	}

	for _, k := range []string{"m", "z", "a"} {
		l.Insert(key(k), key("v"), 0)
	}

	it.SeekToLast()
	if !it.Valid() || string(it.Key()) != "z" {
		t.Fatalf("SeekToLast = %q, want z", it.Key())
	}
}

// TestLexicographicCompare guards the full byte-wise comparison fix: full
// min(len)-then-length-tiebreak comparison, not a min-length-only memcmp.
func TestLexicographicCompare(t *testing.T) {
	l := skiplist.New()

	for _, k := range []string{"ab", "a", "abc", "b"} {
		l.Insert(key(k), key("v"), 0)
	}

	it := skiplist.NewIterator(l)

	var order []string
	for it.SeekToFirst(); it.Valid(); it.Next() {
		order = append(order, string(it.Key()))
	}

	want := []string{"a", "ab", "abc", "b"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// TestManyKeysStayOrdered exercises height growth across many randomHeight
// draws.
func TestManyKeysStayOrdered(t *testing.T) {
	l := skiplist.New()

	const n = 2000
	for i := 0; i < n; i++ {
		k := []byte{byte(i >> 8), byte(i)}
		l.Insert(k, key("v"), 0)
	}

	it := skiplist.NewIterator(l)
	it.SeekToFirst()

	count := 0
	var prev []byte

	for ; it.Valid(); it.Next() {
		if prev != nil && string(it.Key()) <= string(prev) {
			t.Fatalf("out of order: %q then %q", prev, it.Key())
		}

		prev = append([]byte(nil), it.Key()...)
		count++
	}

	if count != n {
		t.Fatalf("traversed %d entries, want %d", count, n)
	}
}
