// hotcache-bench drives an in-process workload against a hotcache.HotCache
// and reports promote/update throughput and the final accounting report.
//
// Usage:
//
//	hotcache-bench [-keys=N] [-keyspace=N] [-value-size=N] [-updates-per-key=N]
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/kavyanarasimhan/hotkeycache/hotcache"
)

func main() {
	keys := flag.Int("keys", 100_000, "number of distinct keys to promote")
	keyspace := flag.Int("keyspace", 20_000, "number of distinct keys eligible for update traffic")
	valueSize := flag.Int("value-size", 64, "value size in bytes for promotions")
	updatesPerKey := flag.Int("updates-per-key", 4, "update calls issued per hot key, on average")
	seed := flag.Uint64("seed", 1, "PRNG seed for reproducible runs")

	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed))

	c := hotcache.New()
	defer c.Close()

	value := make([]byte, *valueSize)
	fillRandom(rng, value)

	promoteStart := time.Now()

	for i := 0; i < *keys; i++ {
		key := fmt.Sprintf("bench-key-%010d", i)
		c.InsertFromCompaction(internalKey(key, uint64(i), hotcache.Value), value)
	}

	promoteElapsed := time.Since(promoteStart)

	updateCount := *keyspace * *updatesPerKey
	updateValue := make([]byte, *valueSize)
	fillRandom(rng, updateValue)

	updateStart := time.Now()

	sequence := uint64(*keys) + 1
	for i := 0; i < updateCount; i++ {
		key := fmt.Sprintf("bench-key-%010d", rng.IntN(*keyspace))
		c.UpdateIfExist(sequence, hotcache.Value, []byte(key), updateValue)
		sequence++
	}

	updateElapsed := time.Since(updateStart)

	fmt.Fprintf(os.Stdout, "promote: %d keys in %s (%.0f ops/s)\n",
		*keys, promoteElapsed, float64(*keys)/promoteElapsed.Seconds())
	fmt.Fprintf(os.Stdout, "update:  %d calls in %s (%.0f ops/s)\n",
		updateCount, updateElapsed, float64(updateCount)/updateElapsed.Seconds())
	fmt.Fprintln(os.Stdout, c.PrintCacheInfo())
}

func internalKey(userKey string, sequence uint64, typ hotcache.EntryType) []byte {
	buf := make([]byte, len(userKey)+8)
	copy(buf, userKey)
	binary.LittleEndian.PutUint64(buf[len(userKey):], (sequence<<8)|uint64(typ))

	return buf
}

// fillRandom fills buf with random bytes. math/rand/v2 dropped the Read
// method rand.Rand had in v1, so this takes its place.
func fillRandom(rng *rand.Rand, buf []byte) {
	for i := range buf {
		buf[i] = byte(rng.Uint64())
	}
}
