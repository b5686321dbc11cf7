// Package directindex implements the direct index of the hot-key cache: an
// associative lookup from user-key to the skip-list node that already
// holds it, so an update hit never has to pay for the ordered index's
// logarithmic search.
//
// It is keyed by user-key *value*, deliberately unlike a hash map built
// over pointer identity (hashing a byte-slice's data pointer) while the
// actual comparisons key on the string contents - a latent
// pointer-vs-value mismatch some hand-rolled hash maps fall into. A Go
// map[string]T already keys by value, so there is no equivalent mistake
// to make here; the string conversion is the value key, full stop.
package directindex

import "github.com/kavyanarasimhan/hotkeycache/internal/skiplist"

// Index maps user-key to the ordered-index node that owns it. It agrees
// with the ordered index's level-0 linkage by construction - the facade
// is the only writer of both, and always inserts into the ordered index
// first, then records the resulting node here.
//
// Unlike the ordered index, Index is not read concurrently with
// Promote/Update; readers that want concurrent lookups use the ordered
// index's lock-free Contains/Get instead. Every method here must only be
// called from the cache's single serialized writer goroutine.
type Index struct {
	m map[string]*skiplist.Node
}

// New returns an empty direct index.
func New() *Index {
	return &Index{m: make(map[string]*skiplist.Node)}
}

// Lookup returns the node for key, or (nil, false) if absent.
func (ix *Index) Lookup(key []byte) (*skiplist.Node, bool) {
	n, ok := ix.m[string(key)]

	return n, ok
}

// Record associates key with node. The caller guarantees key is not
// already present - Record does not check, and will silently overwrite
// if that guarantee is violated, which is why the facade only ever calls
// it immediately after a successful (non-duplicate) skiplist.List.Insert.
func (ix *Index) Record(key []byte, node *skiplist.Node) {
	ix.m[string(key)] = node
}

// Len reports the number of recorded entries. Exposed for tests and
// accounting, not part of the core read/write contract.
func (ix *Index) Len() int { return len(ix.m) }

// Destroy drops all references, letting the garbage collector reclaim the
// map and the nodes it alone still kept alive (mirrors skiplist.List.Destroy:
// ownership of node memory is single-rooted at the ordered index, so Index
// never frees anything on its own - it just stops pointing at it).
func (ix *Index) Destroy() {
	ix.m = nil
}
