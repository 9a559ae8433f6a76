package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 42, min: 23, max: 62, expected: 42},
		{name: "below", value: 0, min: 23, max: 62, expected: 23},
		{name: "above", value: 10000, min: 23, max: 62, expected: 62},
		{name: "swapped", value: 100, min: 62, max: 23, expected: 62},
		{name: "on bound", value: 23, min: 23, max: 62, expected: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampNaNPassesThrough(t *testing.T) {
	if got := Clamp(math.NaN(), 23, 62); !math.IsNaN(got) {
		t.Fatalf("Clamp(NaN) = %v, want NaN", got)
	}
}

func TestMagnitude3(t *testing.T) {
	tests := []struct {
		x, y, z float64
		want    float64
	}{
		{42, 0, 0, 42},
		{0, -60, 0, 60},
		{3, 4, 12, 13},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Magnitude3(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("Magnitude3(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestIsFinite3(t *testing.T) {
	if !IsFinite3(1, 2, 3) {
		t.Fatal("finite triple reported as non-finite")
	}
	if IsFinite3(1, math.NaN(), 3) {
		t.Fatal("NaN component reported as finite")
	}
	if IsFinite3(1, 2, math.Inf(-1)) {
		t.Fatal("Inf component reported as finite")
	}
}
