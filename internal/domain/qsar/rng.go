package qsar

// SplitMix64 is a tiny deterministic PRNG (Steele, Lea & Flood 2014).  Model
// training must be reproducible across platforms, so the forest uses this
// fixed algorithm instead of math/rand, whose sequence is not guaranteed
// stable between Go releases.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 seeds a new generator.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Next returns the next 64-bit value.
func (r *SplitMix64) Next() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Intn returns a value in [0, n).  n must be positive.
func (r *SplitMix64) Intn(n int) int {
	return int(r.Next() % uint64(n))
}

// Shuffle returns a Fisher-Yates permutation of [0, n).
func Shuffle(rng *SplitMix64, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}
