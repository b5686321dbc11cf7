package skiplist

// Iterator supports in-order traversal of the ordered index. It is not
// safe for concurrent use by multiple goroutines (each goroutine should
// have its own Iterator), but is safe to use concurrently with Insert -
// an Iterator always observes keys the writer has published in ascending
// order, never a torn or out-of-order view.
//
// An Iterator from NewIterator is invalid until Seek/SeekToFirst/SeekToLast
// is called; the zero Iterator has no list and must not be used.
type Iterator struct {
	list *List
	node *Node // nil means invalid (before-first or past-end)
}

// NewIterator returns an iterator over list. It starts invalid; call
// SeekToFirst, SeekToLast, or Seek before reading.
func NewIterator(list *List) *Iterator {
	return &Iterator{list: list}
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool { return it.node != nil }

// Key returns the current entry's key. Valid must be true.
func (it *Iterator) Key() []byte { return it.node.key }

// Node returns the current entry's node. Valid must be true.
func (it *Iterator) Node() *Node { return it.node }

// SeekToFirst positions the iterator at the smallest key.
func (it *Iterator) SeekToFirst() {
	it.node = it.list.head.forwardAt(0)
}

// SeekToLast positions the iterator at the largest key, or invalid if the
// list is empty.
func (it *Iterator) SeekToLast() {
	it.node = it.list.findLast()
}

// Seek positions the iterator at the first key >= target, or invalid if no
// such key exists.
func (it *Iterator) Seek(target []byte) {
	it.node = it.list.findGreaterOrEqual(target, nil)
}

// Next advances to the next entry in ascending order. Valid must be true
// before calling.
func (it *Iterator) Next() {
	it.node = it.node.forwardAt(0)
}

// Prev moves to the previous entry in ascending order. Valid must be true
// before calling. Implemented by rescanning from the head, since nodes
// carry no back-pointers.
func (it *Iterator) Prev() {
	it.node = it.list.findLessThan(it.node.key)
}
