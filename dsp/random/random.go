// Package random provides the seeded uniform random source shared by the
// texture generators.
//
// A [Randomizer] is deterministic: two instances with the same seed, range
// and resolution produce identical sequences. It performs no allocation after
// construction and is not safe for concurrent use.
package random

import (
	"math"
	"math/rand"
)

// DefaultSeed is used when no seed is supplied.
const DefaultSeed int64 = 1

// Randomizer draws uniformly distributed values from [min, max], quantized to
// a resolution grid.
type Randomizer struct {
	min        float64
	max        float64
	resolution float64
	seed       int64

	rng *rand.Rand
}

// New returns a randomizer over [min, max] with the given resolution
// (0 = continuous) and seed.
func New(min, max, resolution float64, seed int64) *Randomizer {
	r := &Randomizer{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
	r.Init(min, max, resolution)
	return r
}

// Init reconfigures the output range and resolution. It does not reseed.
func (r *Randomizer) Init(min, max, resolution float64) {
	if min > max {
		min, max = max, min
	}
	if resolution < 0 || math.IsNaN(resolution) {
		resolution = 0
	}
	r.min = min
	r.max = max
	r.resolution = resolution
}

// Seed restarts the sequence from seed.
func (r *Randomizer) Seed(seed int64) {
	r.seed = seed
	r.rng.Seed(seed)
}

// SeedValue returns the seed the sequence was last started from.
func (r *Randomizer) SeedValue() int64 { return r.seed }

// Min returns the lower bound of Next.
func (r *Randomizer) Min() float64 { return r.min }

// Max returns the upper bound of Next.
func (r *Randomizer) Max() float64 { return r.max }

// Resolution returns the quantization step of Next (0 = continuous).
func (r *Randomizer) Resolution() float64 { return r.resolution }

// Next returns the next value in [min, max].
func (r *Randomizer) Next() float64 {
	v := r.min + r.rng.Float64()*(r.max-r.min)
	if r.resolution > 0 {
		v = r.min + math.Round((v-r.min)/r.resolution)*r.resolution
		if v > r.max {
			v = r.max
		}
	}
	return v
}

// Float returns a continuous value in [0, 1) independent of the configured
// range.
func (r *Randomizer) Float() float64 {
	return r.rng.Float64()
}

// Bipolar returns a continuous value in [-1, 1).
func (r *Randomizer) Bipolar() float64 {
	return 2*r.rng.Float64() - 1
}

// Between returns a continuous value in [lo, hi] for an unordered pair.
func (r *Randomizer) Between(lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func (r *Randomizer) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Derive maps a root seed and a stream index onto an independent seed
// (splitmix64 finalizer), so sibling modules do not share sequences.
func Derive(root int64, index int) int64 {
	z := uint64(root) + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z >> 1)
}
