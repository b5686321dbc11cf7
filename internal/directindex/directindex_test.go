package directindex_test

import (
	"testing"

	"github.com/kavyanarasimhan/hotkeycache/internal/directindex"
	"github.com/kavyanarasimhan/hotkeycache/internal/skiplist"
)

func TestLookupMiss(t *testing.T) {
	ix := directindex.New()

	if _, ok := ix.Lookup([]byte("ghost")); ok {
		t.Fatalf("expected miss on empty index")
	}
}

func TestRecordThenLookup(t *testing.T) {
	ix := directindex.New()
	l := skiplist.New()

	n, _ := l.Insert([]byte("k"), []byte("v"), 0)
	ix.Record([]byte("k"), n)

	got, ok := ix.Lookup([]byte("k"))
	if !ok || got != n {
		t.Fatalf("Lookup after Record = (%v, %v), want (%v, true)", got, ok, n)
	}

	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Len())
	}
}

func TestDestroy(t *testing.T) {
	ix := directindex.New()
	l := skiplist.New()

	n, _ := l.Insert([]byte("k"), []byte("v"), 0)
	ix.Record([]byte("k"), n)

	ix.Destroy()

	if _, ok := ix.Lookup([]byte("k")); ok {
		t.Fatalf("expected no entries reachable after Destroy")
	}
}
