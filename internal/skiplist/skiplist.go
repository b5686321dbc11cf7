// Package skiplist: see doc.go for the package overview.
package skiplist

import (
	"bytes"
	"sync/atomic"
)

// List is a concurrent, single-writer/many-reader skip list ordered by
// user-key. The zero value is not usable; construct with New.
type List struct {
	head *Node

	// height is the tallest level currently linked anywhere in the list.
	// It only ever grows. A reader that loads a stale value either sees a
	// shorter list (correct, just slower) or sees a just-raised top level
	// whose head.forward[level] is still nil, and falls through to the
	// next level harmlessly.
	height atomic.Int32
}

// New returns an empty ordered index.
func New() *List {
	l := &List{head: &Node{forward: make([]atomic.Pointer[Node], MaxHeight)}}
	l.height.Store(1)

	return l
}

// compare orders keys by full bytewise lexicographic comparison: compare
// min(|a|,|b|) bytes, and on a tie the shorter key sorts first. This is
// exactly bytes.Compare - no special-casing needed, unlike a naive
// memcmp-over-the-minimum-length routine, which is broken when lengths
// differ (it compares min(len) bytes but never tie-breaks on the
// remaining length).
func compare(a, b []byte) int { return bytes.Compare(a, b) }

// findGreaterOrEqual descends levels top-down, advancing forward[level]
// while the next key is strictly less than key, recording the predecessor
// at each level into prev (if non-nil). It returns the first node with
// key >= target, or nil if none exists.
func (l *List) findGreaterOrEqual(key []byte, prev []*Node) *Node {
	x := l.head

	for level := int(l.height.Load()) - 1; level >= 0; level-- {
		next := x.forwardAt(level)
		for next != nil && compare(next.key, key) < 0 {
			x = next
			next = x.forwardAt(level)
		}

		if prev != nil {
			prev[level] = x
		}
	}

	return x.forwardAt(0)
}

// findLessThan returns the last node whose key is strictly less than key,
// or nil if no such node exists (the predecessor is the sentinel).
// Implemented by rescanning from the head - there are no back-pointers.
func (l *List) findLessThan(key []byte) *Node {
	x := l.head

	for level := int(l.height.Load()) - 1; level >= 0; level-- {
		next := x.forwardAt(level)
		for next != nil && compare(next.key, key) < 0 {
			x = next
			next = x.forwardAt(level)
		}
	}

	if x == l.head {
		return nil
	}

	return x
}

// findLast descends levels while the next pointer is non-nil, landing on
// the node with the greatest key, or nil if the list is empty.
func (l *List) findLast() *Node {
	x := l.head

	for level := int(l.height.Load()) - 1; level >= 0; level-- {
		for {
			next := x.forwardAt(level)
			if next == nil {
				break
			}

			x = next
		}
	}

	if x == l.head {
		return nil
	}

	return x
}

// Contains reports whether key is present. Lock-free and safe to call
// concurrently with Insert.
func (l *List) Contains(key []byte) bool {
	x := l.findGreaterOrEqual(key, nil)

	return x != nil && compare(x.key, key) == 0
}

// Get returns the node for key, or nil if absent. Lock-free.
func (l *List) Get(key []byte) *Node {
	x := l.findGreaterOrEqual(key, nil)
	if x != nil && compare(x.key, key) == 0 {
		return x
	}

	return nil
}

// Insert links a new node for (key, value, tag) if key is not already
// present, and returns it. If key is already present, Insert returns
// (nil, false) and does not touch the list - the facade treats that as a
// duplicate promotion and silently skips it.
//
// Insert requires external write serialization: at most one goroutine may
// call it (or Destroy) at a time, concurrently with any number of readers.
func (l *List) Insert(key, value []byte, tag uint64) (*Node, bool) {
	var prev [MaxHeight]*Node

	next := l.findGreaterOrEqual(key, prev[:])
	if next != nil && compare(next.key, key) == 0 {
		return nil, false
	}

	height := randomHeight()
	curHeight := int(l.height.Load())

	if height > curHeight {
		for level := curHeight; level < height; level++ {
			prev[level] = l.head
		}
		// Relaxed is sufficient: no reader has observed the new top level
		// through a forward pointer yet, so there is nothing to order
		// against.
		l.height.Store(int32(height))
	}

	node := newNode(key, value, tag, height)

	// Step 2: wire the new node's own forward slots before it is
	// reachable from anywhere. Plain stores are fine here - node isn't
	// published yet, so there's no concurrent reader to order against.
	for level := 0; level < height; level++ {
		node.setForwardRelaxed(level, prev[level].forwardAt(level))
	}

	// Step 4: publish level by level. Each store here is a release store
	// (Go's sync/atomic gives every Store release semantics); paired with
	// the acquire loads in forwardAt, any reader that reaches node through
	// prev[level].forward[level] is guaranteed to see node's fully
	// initialized key/value/tag and its own lower-level forward slots.
	for level := 0; level < height; level++ {
		prev[level].forward[level].Store(node)
	}

	return node, true
}

// Destroy releases all node buffers. It must only be called once, after
// every reader and the writer have stopped using the list. It walks the
// ordered index and releases every node's buffers, in place of the
// source implementation's leaked, never-defined destructor.
//
// In Go, "release" means drop every reference so the garbage collector can
// reclaim the backing arrays; there is no manual free to get wrong.
func (l *List) Destroy() {
	for n := l.head.forwardAt(0); n != nil; {
		next := n.forwardAt(0)

		n.setValue(nil)
		n.retired = nil

		for level := range n.forward {
			n.forward[level].Store(nil)
		}

		n = next
	}

	for level := range l.head.forward {
		l.head.forward[level].Store(nil)
	}
}
