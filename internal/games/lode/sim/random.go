package sim

import "math/rand"

// Random is the stage RNG. All simulation randomness flows through it so a
// seed fully determines a run.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a generator with the given seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// NextInt returns a value in [0, n). Panics if n <= 0.
func (r *Random) NextInt(n int) int {
	if n <= 0 {
		panic("sim: Random.NextInt called with n <= 0")
	}
	return r.rng.Intn(n)
}

// NextBoolean returns true with probability 1/n. Panics if n <= 0.
func (r *Random) NextBoolean(n int) bool {
	if n <= 0 {
		panic("sim: Random.NextBoolean called with n <= 0")
	}
	return r.rng.Intn(n) == 0
}
