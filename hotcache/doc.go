// Package hotcache implements the Hot-Key Cache subsystem of a
// log-structured merge-tree key-value store: a write-absorbing cache that
// sits beside the memtable and mutates hot keys' values in place, so that
// compaction no longer has to rewrite their obsolete versions.
//
// hotcache is a throwaway accelerator, not a source of truth - it never
// persists, and the surrounding LSM engine remains the only place state can
// durably live. There is nothing here to rebuild from on corruption because
// there is nothing here that can corrupt: the cache is process-local,
// volatile, and its only failure mode is a panic on programmer error
// (see "Error Handling" below).
//
// # Basic Usage
//
//	cache := hotcache.New()
//	defer cache.Close()
//
//	// Compaction promotes a hot key into the cache.
//	cache.InsertFromCompaction(internalKey, value)
//
//	// A later write to the same key patches it in place.
//	updated := cache.UpdateIfExist(sequence, hotcache.Value, userKey, newValue)
//
//	stats := cache.Report()
//
// # Concurrency
//
// hotcache uses a single-writer, many-reader model:
//   - [HotCache.InsertFromCompaction] and [HotCache.UpdateIfExist] must be
//     called by one serialized writer, typically the same mutex that
//     guards memtable switching in the host engine.
//   - [HotCache.Report] is safe for concurrent use by any number of
//     goroutines, including the writer.
//
// # Error Handling
//
// There is no error-return surface at all: a duplicate
// promotion is a silent no-op, a miss on update returns false, and an
// invariant violation - the only thing this package considers a bug in the
// caller, such as an internal key shorter than the 8-byte tag suffix, or a
// second writer call overlapping the first - panics with a diagnostic
// rather than attempt to continue running against a contract that has
// already been broken.
package hotcache
