package hotcache

import "fmt"

const bytesPerGiB = 1 << 30

// PrintCacheInfo renders the accounting snapshot as a human-readable
// summary: total bytes cached in GiB to three decimal places, and the
// running hit ratio hits/puts. It returns the string rather than writing
// it anywhere - logging destinations are a host concern this package has
// no opinion on.
func (c *HotCache) PrintCacheInfo() string {
	r := c.Report()

	gib := float64(r.Bytes) / float64(bytesPerGiB)

	var hitRatio float64
	if r.Puts > 0 {
		hitRatio = float64(r.Hits) / float64(r.Puts)
	}

	return fmt.Sprintf("hot-key cache: %.3f GiB cached, hit ratio %.4f (%d hits / %d puts)",
		gib, hitRatio, r.Hits, r.Puts)
}
