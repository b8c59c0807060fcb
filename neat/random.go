package neat

import (
	"math/rand"
	"sync"
)

// Random is the source of uniform randomness used by the engine.
type Random interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Range returns a value in [min, max).
	Range(min, max float64) float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// lockedRandom serializes access to a math/rand generator so the engine's
// random source can be shared with parallel fitness workers.
type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed. Equal seeds give equal sequences.
func NewRandom(seed int64) Random {
	return &lockedRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRandom) Range(min, max float64) float64 {
	return min + (max-min)*r.Float64()
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// chance reports true with probability p.
func chance(r Random, p float64) bool {
	return r.Float64() < p
}

// pick returns a uniformly chosen element of items. It panics on an empty slice.
func pick[T any](r Random, items []T) T {
	if len(items) == 0 {
		panic("neat: cannot pick from an empty collection")
	}
	return items[r.Intn(len(items))]
}
