// Package core holds small numeric helpers shared by the field processors.
package core

import "math"

// Clamp limits value to the inclusive range [min, max].
//
// A NaN value is returned unchanged: both comparisons are false for NaN.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value > max {
		return max
	}

	if value < min {
		return min
	}

	return value
}

// Magnitude3 returns the Euclidean norm sqrt(x*x + y*y + z*z).
// Unlike math.Hypot it does not rescale against overflow.
func Magnitude3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

// IsFinite3 reports whether none of the three components is NaN or Inf.
func IsFinite3(x, y, z float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) &&
		!math.IsNaN(y) && !math.IsInf(y, 0) &&
		!math.IsNaN(z) && !math.IsInf(z, 0)
}
