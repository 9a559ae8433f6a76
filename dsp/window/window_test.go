package window

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-magjam/internal/testutil"
)

func TestHann(t *testing.T) {
	tests := []struct {
		name string
		size int
		opts []Option
		want []float64
	}{
		{"symmetric", 5, nil, []float64{0, 0.5, 1, 0.5, 0}},
		{"periodic", 4, []Option{WithPeriodic()}, []float64{0, 0.5, 1, 0.5}},
		{"single", 1, nil, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Hann(tt.size, tt.opts...)
			if err != nil {
				t.Fatalf("Hann() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, w, tt.want, 1e-12)
		})
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	w, _ := Hann(len(buf))
	if err := ApplyCoefficientsInPlace(buf, w); err != nil {
		t.Fatalf("ApplyCoefficientsInPlace() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 1, 2, 1, 0}, 1e-12)

	if err := ApplyCoefficientsInPlace(buf, w[:3]); !errors.Is(err, errMismatchedLength) {
		t.Fatalf("error = %v, want errMismatchedLength", err)
	}
}

func TestSum(t *testing.T) {
	w, _ := Hann(5)
	if got := Sum(w); got < 2-1e-12 || got > 2+1e-12 {
		t.Fatalf("Sum() = %v, want 2", got)
	}
}
