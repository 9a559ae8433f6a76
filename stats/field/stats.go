// Package field summarises a replayed field-intensity trace together with the
// jamming decisions taken on it.
package field

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned for an empty trace.
	ErrEmptyInput = errors.New("field: empty input")

	// ErrLengthMismatch is returned when the status slice does not match the trace.
	ErrLengthMismatch = errors.New("field: length mismatch")
)

// Summary holds statistics of a field-intensity trace.
type Summary struct {
	Samples int

	Mean   float64
	StdDev float64 // sample standard deviation, zero for a single sample
	Min    float64
	Max    float64
	Median float64
	P95    float64

	// Jamming statistics, zero when no status was given.
	JammedSamples  int
	JammedFraction float64
	Activations    int // inactive to active transitions
	LongestJam     int // longest run of consecutive jammed samples
}

// Summarize computes a Summary of intensity. active may be nil; otherwise it
// must hold one jamming decision per sample.
func Summarize(intensity []float64, active []bool) (Summary, error) {
	n := len(intensity)
	if n == 0 {
		return Summary{}, ErrEmptyInput
	}
	if active != nil && len(active) != n {
		return Summary{}, fmt.Errorf("%w: %d samples, %d decisions", ErrLengthMismatch, n, len(active))
	}

	s := Summary{
		Samples: n,
		Min:     floats.Min(intensity),
		Max:     floats.Max(intensity),
	}

	if n > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(intensity, nil)
	} else {
		s.Mean = intensity[0]
	}

	sorted := make([]float64, n)
	copy(sorted, intensity)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	run := 0
	prev := false
	for _, a := range active {
		if a {
			s.JammedSamples++
			run++
			if run > s.LongestJam {
				s.LongestJam = run
			}
			if !prev {
				s.Activations++
			}
		} else {
			run = 0
		}
		prev = a
	}
	s.JammedFraction = float64(s.JammedSamples) / float64(n)

	return s, nil
}
