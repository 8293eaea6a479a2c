package particle

import (
	"math/rand"
	"time"
)

// Source supplies uniformly distributed values in [0, 1).
// *rand.Rand satisfies it; tests may inject a fixed sequence.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource returns a source seeded from the wall clock.
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

// SourceFor returns a seeded source, or a time-seeded one when seed is 0.
func SourceFor(seed int64) Source {
	if seed == 0 {
		return NewTimeSource()
	}
	return NewSource(seed)
}

// randomInRange returns a value in [min, max).
func randomInRange(rng Source, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// randomInt returns an integer in [0, n).
func randomInt(rng Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
