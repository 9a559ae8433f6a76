package testutil

import "testing"

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{42, 42.0000001}, []float64{42, 42}, 1e-6)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{23, 62, 0})
}

func TestRequireWithinPasses(t *testing.T) {
	RequireWithin(t, "baseline", 42, 23, 62)
	RequireWithin(t, "edge", 62, 23, 62)
}
