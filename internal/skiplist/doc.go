// Package skiplist implements the ordered index of the hot-key cache: a
// concurrent, single-writer/many-reader skip list keyed by user-key bytes,
// where each node additionally carries a mutable value slot and a mutable
// 8-byte tag slot.
//
// The linking discipline follows the classic LevelDB/RocksDB concurrent
// skip list: the writer publishes a fully-initialized node by storing its
// forward pointers with release ordering, so any reader that observes the
// node through a forward pointer also observes its initialized key, value,
// and tag. Readers never take locks; they retry only at the caller's
// discretion (this package makes no such retries itself - see node.go for
// why in-place value mutation needs none either).
//
// Only point operations and ordered traversal are supported. Range
// deletion and key removal are out of scope; nodes live until the whole
// list is discarded.
package skiplist
