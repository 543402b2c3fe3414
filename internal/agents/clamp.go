package agents

import "golang.org/x/exp/constraints"

// Bounds of health, reputation and relationship scores.
const (
	ScoreMin = 0
	ScoreMax = 100
)

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampScore bounds a score to [0, 100].
func ClampScore(v int) int {
	return Clamp(v, ScoreMin, ScoreMax)
}
