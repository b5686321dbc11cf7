package testutil

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/kavyanarasimhan/hotkeycache/internal/skiplist"
)

// OpKind distinguishes the two write-path messages the cache accepts:
// promoting a key from compaction, or patching an already-cached one.
type OpKind int

const (
	OpPromote OpKind = iota
	OpUpdate
)

// Op is one generated operation, carrying enough fields to drive either
// hotcache.HotCache or Model identically.
type Op struct {
	Kind     OpKind
	Key      []byte
	Value    []byte
	Sequence uint64
	Type     skiplist.EntryType
}

// InternalKey builds the `user_key ∥ tag` suffix layout InsertFromCompaction
// requires of its argument.
func (op Op) InternalKey() []byte {
	buf := make([]byte, len(op.Key)+8)
	copy(buf, op.Key)
	binary.LittleEndian.PutUint64(buf[len(op.Key):], skiplist.EncodeTag(op.Sequence, op.Type))

	return buf
}

// GenerateOps produces n random Promote/Update operations over a small
// keyspace (so that update-hit and duplicate-promotion paths are both
// exercised often), using rng for reproducibility under a fixed seed -
// the same "deterministic seeded PRNG... reproducible operation sequences"
// approach that keeps failures reproducible across runs.
func GenerateOps(rng *rand.Rand, n, keyspace int) []Op {
	ops := make([]Op, 0, n)

	var sequence uint64

	for i := 0; i < n; i++ {
		sequence++
		key := []byte(fmt.Sprintf("key-%04d", rng.Intn(keyspace)))

		if rng.Intn(4) == 0 {
			value := randomValue(rng)
			ops = append(ops, Op{
				Kind:     OpPromote,
				Key:      key,
				Value:    value,
				Sequence: sequence,
				Type:     skiplist.Value,
			})

			continue
		}

		typ := skiplist.Value
		if rng.Intn(5) == 0 {
			typ = skiplist.Deletion
		}

		value := []byte(nil)
		if typ == skiplist.Value {
			value = randomValue(rng)
		}

		ops = append(ops, Op{
			Kind:     OpUpdate,
			Key:      key,
			Value:    value,
			Sequence: sequence,
			Type:     typ,
		})
	}

	return ops
}

func randomValue(rng *rand.Rand) []byte {
	n := rng.Intn(17) // 0..16 bytes; exercises both grow and shrink patches
	buf := make([]byte, n)
	rng.Read(buf)

	return buf
}
