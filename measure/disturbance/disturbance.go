// Package disturbance estimates the spectral content of a recorded field
// intensity trace, for example to identify mains-frequency or motor
// interference that drives a jamming detector.
package disturbance

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-magjam/dsp/window"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned for an empty trace.
	ErrEmptyInput = errors.New("disturbance: empty input")

	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("disturbance: invalid sample rate")
)

// Config controls the analysis.
type Config struct {
	// FFTSize is the transform length. Zero or anything shorter than the
	// trace selects the next power of two at or above the trace length.
	FFTSize int

	// MinFrequency excludes slow drift below this frequency from the peak
	// search. The DC bin is always excluded.
	MinFrequency float64
}

// Option mutates a Config.
type Option func(*Config)

// WithFFTSize sets the transform length.
func WithFFTSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.FFTSize = n
		}
	}
}

// WithMinFrequency sets the lowest frequency considered for the peak.
func WithMinFrequency(hz float64) Option {
	return func(cfg *Config) {
		if hz >= 0 {
			cfg.MinFrequency = hz
		}
	}
}

// Result holds the one-sided amplitude spectrum of the trace.
type Result struct {
	SampleRate float64
	FFTSize    int
	BinHz      float64

	// Mean is the average intensity removed before the transform.
	Mean float64

	// Amplitude holds bins 0..FFTSize/2, scaled so that a sinusoid of
	// amplitude A reads approximately A at its peak bin.
	Amplitude []float64

	PeakFrequency float64
	PeakAmplitude float64
}

// Analyze computes the amplitude spectrum of intensity sampled at sampleRate.
//
// The mean is removed and a Hann window applied before the transform.
func Analyze(intensity []float64, sampleRate float64, opts ...Option) (Result, error) {
	if len(intensity) == 0 {
		return Result{}, ErrEmptyInput
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(intensity)
	fftSize := cfg.FFTSize
	if fftSize < n {
		fftSize = nextPowerOf2(n)
	}

	mean := stat.Mean(intensity, nil)
	buf := make([]float64, n)
	for i, v := range intensity {
		buf[i] = v - mean
	}

	win, err := window.Hann(n)
	if err != nil {
		return Result{}, fmt.Errorf("disturbance: %w", err)
	}
	if err := window.ApplyCoefficientsInPlace(buf, win); err != nil {
		return Result{}, fmt.Errorf("disturbance: %w", err)
	}
	gain := window.Sum(win)

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("disturbance: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("disturbance: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	amp := make([]float64, bins)
	vecmath.Magnitude(amp, re, im)

	scale := 0.0
	if gain > 0 {
		scale = 2 / gain
	}
	for k := range amp {
		amp[k] *= scale
	}

	res := Result{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		BinHz:      sampleRate / float64(fftSize),
		Mean:       mean,
		Amplitude:  amp,
	}

	lo := max(1, int(math.Ceil(cfg.MinFrequency/res.BinHz)))
	peak := -1
	for k := lo; k < bins; k++ {
		if peak < 0 || amp[k] > amp[peak] {
			peak = k
		}
	}
	if peak >= 0 {
		res.PeakFrequency = float64(peak) * res.BinHz
		res.PeakAmplitude = amp[peak]
	}

	return res, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
