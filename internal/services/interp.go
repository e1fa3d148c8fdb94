package services

import "math"

// Interp evaluates a piecewise-linear curve at x. The breakpoints xs must be
// strictly increasing and ys must have the same length. Queries outside the
// table extrapolate flat: below the first breakpoint the first y is returned,
// above the last breakpoint the last y.
func Interp(xs, ys []float64, x float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0
	}
	last := len(xs) - 1
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[last] {
		return ys[last]
	}
	for i := 1; i <= last; i++ {
		if x < xs[i] {
			frac := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + frac*(ys[i]-ys[i-1])
		}
	}
	return ys[last]
}

// clampScore limits a raw product of base points and multipliers to the
// score range every scorer reports in.
func clampScore(v float64) float64 {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

// round1 rounds to one decimal, the precision stored and exported for
// risk scores.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
