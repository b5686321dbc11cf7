package hotcache

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/kavyanarasimhan/hotkeycache/internal/directindex"
	"github.com/kavyanarasimhan/hotkeycache/internal/skiplist"
)

// tagSize is the fixed width of the packed (sequence, type) suffix that
// InsertFromCompaction's internalKey argument must carry.
const tagSize = 8

// HotCache coordinates the ordered index, the direct index, and the
// entry-arena ownership rules under a single-writer, many-reader
// contract. The zero value is not usable; construct with [New].
type HotCache struct {
	ordered *skiplist.List
	direct  *directindex.Index

	// writerEntered defends the "writes are externally serialized"
	// assumption the cache is allowed to make but does not enforce by
	// itself: if two goroutines ever call InsertFromCompaction or
	// UpdateIfExist concurrently, the second one to arrive finds the flag
	// already set and panics instead of racing silently on the direct
	// index. See DESIGN.md for the single-writer enforcement rationale.
	writerEntered atomic.Bool

	bytes atomic.Int64
	puts  atomic.Uint64
	hits  atomic.Uint64

	closed atomic.Bool
}

// New returns an empty hot-key cache.
func New() *HotCache {
	return &HotCache{
		ordered: skiplist.New(),
		direct:  directindex.New(),
	}
}

// enterWriter and exitWriter bracket the two write-path operations,
// enforcing single-writer access defensively (see the writerEntered field
// doc). Callers must always pair enterWriter with a deferred exitWriter.
func (c *HotCache) enterWriter() {
	if c.closed.Load() {
		invariantViolation("operation on a closed HotCache")
	}

	if !c.writerEntered.CompareAndSwap(false, true) {
		invariantViolation("concurrent writer call: writes must be externally serialized")
	}
}

func (c *HotCache) exitWriter() {
	c.writerEntered.Store(false)
}

// InsertFromCompaction promotes a key chosen by compaction into the cache.
//
// internalKey is user-key bytes followed by an 8-byte packed tag; it must
// be at least 8 bytes long. value is the entry's current value bytes.
//
// If the key is already cached, InsertFromCompaction is a silent no-op -
// the compactor is free to re-pick the key later; this is not an error.
func (c *HotCache) InsertFromCompaction(internalKey, value []byte) {
	c.enterWriter()
	defer c.exitWriter()

	if len(internalKey) < tagSize {
		invariantViolation("internal key length %d is shorter than the %d-byte tag suffix", len(internalKey), tagSize)
	}

	split := len(internalKey) - tagSize
	userKey := internalKey[:split]
	tag := binary.LittleEndian.Uint64(internalKey[split:])

	node, inserted := c.ordered.Insert(userKey, value, tag)
	if !inserted {
		// Duplicate promotion: the allocated buffers (never linked into
		// the list) are simply dropped; Go's GC reclaims them. Neither
		// index nor any counter is touched.
		return
	}

	c.direct.Record(userKey, node)

	// Put counts are writes, not promotions: only the bytes counter moves
	// here, and only for a live entry - a tombstone stores no value and
	// counts nothing.
	if skiplist.TagType(tag) != skiplist.Deletion {
		c.bytes.Add(int64(len(userKey) + len(value) + tagSize))
	}
}

// UpdateIfExist applies a user write at sequence to userKey, mutating the
// cached entry in place if present. It returns true if the key was
// cached, false on a miss.
//
// A miss is not an error: it is how the host engine learns the key isn't
// hot enough to have been promoted, and should fall back to its normal
// memtable/SST write path.
func (c *HotCache) UpdateIfExist(sequence uint64, typ EntryType, userKey, value []byte) bool {
	c.enterWriter()
	defer c.exitWriter()

	c.puts.Add(1)

	node, ok := c.direct.Lookup(userKey)
	if !ok {
		return false
	}

	c.hits.Add(1)

	// Only live entries are counted, so a Value<->Deletion transition also
	// moves the key and tag bytes, not just the value delta.
	wasLive := skiplist.TagType(node.Tag()) != skiplist.Deletion
	isLive := typ != skiplist.Deletion

	newTag := skiplist.EncodeTag(sequence, typ)
	delta := int64(node.PatchValue(newTag, value))

	switch {
	case wasLive && !isLive:
		delta -= int64(len(userKey) + tagSize)
	case !wasLive && isLive:
		delta += int64(len(userKey) + tagSize)
	}

	c.bytes.Add(delta)

	return true
}

// Report returns a point-in-time accounting snapshot. Safe for concurrent
// use with the writer and with other readers.
func (c *HotCache) Report() Report {
	return Report{
		Bytes: uint64(c.bytes.Load()),
		Puts:  c.puts.Load(),
		Hits:  c.hits.Load(),
	}
}

// Close tears down the cache, releasing every node's buffers (in place of
// the source implementation's private, never-defined destructor). Close
// must only be called once, after the writer and every reader have
// stopped using the cache.
func (c *HotCache) Close() {
	c.closed.Store(true)
	c.ordered.Destroy()
	c.direct.Destroy()
}
