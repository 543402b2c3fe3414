// Package entropy provides the single random source every roll in the game
// draws from. Production code uses a seeded generator or the random.org pool;
// tests inject a fixed Sequence so threshold logic can be checked exactly.
package entropy

import (
	"math/rand"
)

// Source is the injectable random source.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// Seeded is a deterministic Source backed by math/rand.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a Source from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Float64() float64 { return s.rng.Float64() }
func (s *Seeded) Intn(n int) int   { return s.rng.Intn(n) }

// Sequence replays a fixed list of fractions, cycling when exhausted.
// Intn scales the next fraction into [0, n).
type Sequence struct {
	vals []float64
	next int
}

// NewSequence creates a Sequence. With no values it always returns 0.
func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: vals}
}

func (s *Sequence) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v
}

func (s *Sequence) Intn(n int) int {
	return scale(s.Float64(), n)
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int { return s.next }

func scale(f float64, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(f * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// IntRange returns a uniform integer in [lo, hi].
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports whether a single draw falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element. The slice must not be empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// Sample returns k distinct elements drawn without replacement.
// The input slice is not modified.
func Sample[T any](src Source, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Shuffle permutes items in place.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
