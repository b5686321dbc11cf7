package hotcache

import "github.com/kavyanarasimhan/hotkeycache/internal/skiplist"

// EntryType is the low 8 bits of a packed tag: what kind of write most
// recently touched a cached key.
type EntryType = skiplist.EntryType

const (
	// Deletion marks an entry as a tombstone: structurally present in the
	// cache, logically absent to readers.
	Deletion = skiplist.Deletion
	// Value marks an entry as carrying a live value.
	Value = skiplist.Value
)

// Report is the accounting snapshot returned by [HotCache.Report].
type Report struct {
	// Bytes is the total size, in bytes, of all live (non-deleted) entries
	// presently cached: sum of |key| + |value| + 8 over every live entry.
	Bytes uint64
	// Puts is the total number of UpdateIfExist calls ever made, hit or
	// miss.
	Puts uint64
	// Hits is the number of those calls that found the key already
	// cached.
	Hits uint64
}
