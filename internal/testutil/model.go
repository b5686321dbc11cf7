// Package testutil provides a scaled-down model-based test harness for the
// hot-key cache: a trivially-correct in-memory oracle that the real cache's
// observable behavior can be diffed against, plus a random operation
// generator for property and fuzz testing - the same "oracle: in-memory
// behavioral model" shape common to cache test harnesses, scaled to this
// package's much smaller surface.
package testutil

import (
	"encoding/binary"
	"sort"

	"github.com/kavyanarasimhan/hotkeycache/internal/skiplist"
)

// ModelEntry is one entry of the Model oracle's observable state.
type ModelEntry struct {
	Value []byte
	Tag   uint64
}

// Model is a plain map-backed reference implementation of the hot-key
// cache's write-path contract. It exists purely as an oracle: it makes no
// attempt to be fast, concurrent, or memory-lean - it only needs to be
// obviously correct.
type Model struct {
	entries map[string]ModelEntry
	bytes   int64
	puts    uint64
	hits    uint64
}

// NewModel returns an empty oracle.
func NewModel() *Model {
	return &Model{entries: make(map[string]ModelEntry)}
}

// InsertFromCompaction mirrors hotcache.HotCache.InsertFromCompaction.
func (m *Model) InsertFromCompaction(internalKey, value []byte) {
	split := len(internalKey) - 8
	userKey := string(internalKey[:split])
	tag := binary.LittleEndian.Uint64(internalKey[split:])

	if _, exists := m.entries[userKey]; exists {
		return
	}

	if skiplist.TagType(tag) == skiplist.Deletion {
		m.entries[userKey] = ModelEntry{Tag: tag}

		return
	}

	m.entries[userKey] = ModelEntry{Value: cloneBytes(value), Tag: tag}
	m.bytes += int64(len(userKey) + len(value) + 8)
}

// UpdateIfExist mirrors hotcache.HotCache.UpdateIfExist.
func (m *Model) UpdateIfExist(sequence uint64, typ skiplist.EntryType, userKey, value []byte) bool {
	m.puts++

	key := string(userKey)

	e, ok := m.entries[key]
	if !ok {
		return false
	}

	m.hits++
	wasLive := skiplist.TagType(e.Tag) != skiplist.Deletion
	e.Tag = skiplist.EncodeTag(sequence, typ)

	if typ == skiplist.Deletion {
		if wasLive {
			m.bytes -= int64(len(userKey) + len(e.Value) + 8)
		}

		e.Value = nil
	} else {
		if !wasLive {
			m.bytes += int64(len(userKey) + 8)
		}

		m.bytes += int64(len(value) - len(e.Value))
		e.Value = cloneBytes(value)
	}

	m.entries[key] = e

	return true
}

// Report mirrors hotcache.HotCache.Report.
func (m *Model) Report() (bytes, puts, hits uint64) {
	return uint64(m.bytes), m.puts, m.hits
}

// SortedKeys returns every cached user-key (live or tombstoned) in
// ascending lexicographic order, matching the order the ordered index's
// level-0 traversal must produce.
func (m *Model) SortedKeys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Entry returns the current (value, tag, found) for a user-key.
func (m *Model) Entry(userKey []byte) (ModelEntry, bool) {
	e, ok := m.entries[string(userKey)]

	return e, ok
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out
}
