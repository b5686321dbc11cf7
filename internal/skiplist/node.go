package skiplist

import "sync/atomic"

// MaxHeight is the tallest a node's forward-pointer tower may grow.
// At branching factor 4 this supports roughly 4^12 ≈ 16M entries before the
// top-level chain gets long enough to matter - comfortably more than a hot-key
// working set ever needs.
const MaxHeight = 12

// Node is one entry in the ordered index: an immutable key, a value slot
// that is patched in place by the single writer, and an 8-byte tag that is
// always patched in place.
//
// key is written once, at construction, and never mutated again - readers
// may read it without synchronization once they have observed the node
// through a forward pointer (see the publication protocol in skiplist.go).
//
// value and tag are the entry arena: this file owns their allocation and
// mutation rules so the list's insert/publish code (skiplist.go) and the
// facade's update code (hotcache/facade.go) share one place that knows how
// value bytes may be touched.
type Node struct {
	key []byte

	// value holds a pointer to the current value slice, or nil if the entry
	// is a tombstone (value is absent iff the tag's type is Deletion). Replaced
	// wholesale (never mutated in place) whenever a write changes the
	// length - see PatchValue. A same-length write instead copies directly
	// into the slice the pointer already references; concurrent readers may
	// then observe old bytes, new bytes, or a torn mix of both, which is
	// safe only because readers always re-check tag before trusting value.
	value atomic.Pointer[[]byte]

	// tag packs (sequence<<8 | type). A plain atomic.Uint64 gives
	// torn-free load/store for free, which is strictly stronger than an
	// 8-byte buffer with an explicit release store - there is no reason to
	// weaken it to a byte slice in a language with first-class 64-bit
	// atomics.
	tag atomic.Uint64

	// retired collects value buffers displaced by a length-changing patch.
	// They must not be reused while a reader might still hold the old
	// pointer; in Go that means "don't touch them again", which retired
	// (mutated only by the single writer) gives for free. They are dropped
	// - i.e. made eligible for GC - only when the owning list is torn down
	// via List.Destroy.
	retired [][]byte

	height int
	// forward[l] is the next node at level l, or nil ("+∞"). Readers load
	// with Acquire; the writer stores with Release only once the node is
	// otherwise fully initialized (skiplist.go's publish step).
	forward []atomic.Pointer[Node]
}

// newNode allocates a Node with the given height and fully-initialized
// key/value/tag, but with all forward slots left nil (not yet linked into
// any level). It must not be reachable from the list until the writer
// publishes it level by level.
func newNode(key, value []byte, tag uint64, height int) *Node {
	n := &Node{
		key:     allocKey(key),
		height:  height,
		forward: make([]atomic.Pointer[Node], height),
	}
	n.tag.Store(tag)
	n.setValue(allocValue(value, tag))

	return n
}

// allocKey copies key so the node owns independent storage; key is never
// mutated after construction.
func allocKey(key []byte) []byte {
	buf := make([]byte, len(key))
	copy(buf, key)

	return buf
}

// allocValue copies value unless the tag marks a Deletion, in which case the
// node has no value buffer at all.
func allocValue(value []byte, tag uint64) []byte {
	if TagType(tag) == Deletion {
		return nil
	}

	buf := make([]byte, len(value))
	copy(buf, value)

	return buf
}

// Key returns the node's immutable key bytes. Safe to call without any
// external synchronization once the node was observed via a forward
// pointer.
func (n *Node) Key() []byte { return n.key }

// Tag returns the current packed (sequence<<8 | type) tag; decode it with
// TagSequence and TagType. Always a torn-free snapshot.
func (n *Node) Tag() uint64 { return n.tag.Load() }

// Value returns the node's current value bytes, or (nil, false) if the
// entry is presently a tombstone. The returned slice is a live view into
// arena-owned storage - it may be torn relative to a concurrent
// same-length patch, so callers must treat it as authoritative only
// together with the Tag it was read alongside.
func (n *Node) Value() ([]byte, bool) {
	p := n.value.Load()
	if p == nil {
		return nil, false
	}

	return *p, true
}

func (n *Node) setValue(v []byte) {
	if v == nil {
		n.value.Store(nil)
		return
	}

	n.value.Store(&v)
}

// PatchValue applies the type-specific value mutation for an update: a
// tombstone clears the value, a value write patches or replaces it. It
// returns the signed byte-count delta the caller should apply to its
// accounting (new length minus old length; 0 for an in-place patch or a
// no-op delete-of-tombstone).
//
// PatchValue must only ever be called by the single serialized writer.
func (n *Node) PatchValue(newTag uint64, value []byte) (deltaBytes int) {
	if TagType(newTag) == Deletion {
		old, hadValue := n.Value()
		n.tag.Store(newTag)
		n.setValue(nil)

		if hadValue {
			n.retired = append(n.retired, old)

			return -len(old)
		}

		return 0
	}

	old, hadValue := n.Value()
	n.tag.Store(newTag)

	if hadValue && len(old) == len(value) {
		// Same-length in-place patch: mutate the existing buffer directly.
		// A concurrent reader may observe a torn mix of old and new bytes;
		// it is expected to re-check the tag before trusting the value.
		copy(old, value)

		return 0
	}

	buf := make([]byte, len(value))
	copy(buf, value)
	n.setValue(buf)

	if hadValue {
		n.retired = append(n.retired, old)
	}

	return len(buf) - len(old)
}

// forwardAt returns the node linked after n at level, using an acquire load
// so that, combined with the writer's release-ordered publish, the returned
// node's own fields (key, value, tag, lower forward slots) are guaranteed
// visible to the caller.
func (n *Node) forwardAt(level int) *Node {
	return n.forward[level].Load()
}

func (n *Node) setForwardRelaxed(level int, next *Node) {
	n.forward[level].Store(next)
}
