// Package vecmath provides float64 vector helpers for resonance math.
// All functions are total: mismatched or empty inputs yield zero values
// rather than panicking, so callers validate lengths at their own boundary.
package vecmath

import "math"

// Dot returns the inner product of a and b.
// Returns 0 if the vectors have different lengths or are empty.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Clamp restricts v to [lo, hi]. NaN and Inf collapse to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean returns the arithmetic mean of v, or 0 for an empty vector.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// Displacement returns the L2 distance between before and after.
// Returns 0 if the vectors have different lengths.
func Displacement(before, after []float64) float64 {
	if len(before) != len(after) {
		return 0
	}
	var sum float64
	for i := range before {
		d := after[i] - before[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
