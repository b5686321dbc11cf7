package skiplist

import "math/rand/v2"

// randomHeight draws 1 + Geometric(1/4), clamped to MaxHeight, matching the
// branching factor 4 the LevelDB-family skip list family uses: P(level ≥ k)
// = (1/4)^(k-1). Branching factor 4 keeps expected pointer-chasing shallow
// without the memory overhead of flipping a coin per level.
func randomHeight() int {
	height := 1
	for height < MaxHeight && rand.IntN(4) == 0 {
		height++
	}

	return height
}
