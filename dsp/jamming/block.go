package jamming

import (
	"errors"

	"github.com/cwbudde/algo-magjam/dsp/core"
)

// ErrLengthMismatch is returned by ProcessBlock for unequal slice lengths.
var ErrLengthMismatch = errors.New("jamming: slice length mismatch")

// BlockOutput receives per-sample results of ProcessBlock.
// Nil slices are skipped; non-nil slices must be at least as long as the input.
type BlockOutput struct {
	Intensity []float64
	Baseline  []float64
	Active    []bool
}

// ProcessBlock runs the filter over a recorded trace of equal-length axis
// slices, as if Update had been called for each sample in order. Results,
// including band decisions at the edges, are bit-identical to Update.
func (f *Filter) ProcessBlock(mx, my, mz []float64, out BlockOutput) error {
	n := len(mx)
	if len(my) != n || len(mz) != n {
		return ErrLengthMismatch
	}
	if (out.Intensity != nil && len(out.Intensity) < n) ||
		(out.Baseline != nil && len(out.Baseline) < n) ||
		(out.Active != nil && len(out.Active) < n) {
		return ErrLengthMismatch
	}
	if n == 0 {
		return nil
	}

	mag := out.Intensity
	if mag == nil {
		f.scratch = core.EnsureLen(f.scratch, n)
		mag = f.scratch
	}
	mag = mag[:n]

	for i := range mag {
		// Same rounding as Update; decisions at the band edges depend on it.
		mag[i] = core.Magnitude3(mx[i], my[i], mz[i])
	}

	for i, m := range mag {
		f.step(m)
		if out.Baseline != nil {
			out.Baseline[i] = f.baseline
		}
		if out.Active != nil {
			out.Active[i] = f.active
		}
	}
	return nil
}
