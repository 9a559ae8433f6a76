// Package window generates spectral analysis windows.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

var hannCoeffs = []float64{0.5, -0.5}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window: size must be > 0: %d", size)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = cosineFromCoeffs(samplePosition(i, size, cfg.periodic), hannCoeffs)
	}
	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// Sum returns the sum of the coefficients, the DC gain of the window.
func Sum(coeffs []float64) float64 {
	s := 0.0
	for _, c := range coeffs {
		s += c
	}
	return s
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	v := 0.0
	for k, c := range coeffs {
		v += c * math.Cos(2*math.Pi*float64(k)*x)
	}
	return v
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
