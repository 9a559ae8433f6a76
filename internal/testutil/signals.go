// Package testutil provides deterministic magnetometer signals and tolerance
// assertions for package tests.
package testutil

import (
	"math"
	"math/rand"
)

// dip is the inclination used for synthetic fields, roughly mid-latitude.
const dip = 60 * math.Pi / 180

// Axes holds a 3-axis magnetometer trace with equal-length components.
type Axes struct {
	X, Y, Z []float64
}

// Len returns the number of samples.
func (a Axes) Len() int { return len(a.X) }

// RotatingField returns a field of constant magnitude whose horizontal
// component rotates at rateHz, as seen by a sensor turning in place.
func RotatingField(magnitude, rateHz, sampleRate float64, length int) Axes {
	a := Axes{
		X: make([]float64, length),
		Y: make([]float64, length),
		Z: make([]float64, length),
	}
	h := magnitude * math.Cos(dip)
	v := magnitude * math.Sin(dip)
	step := 2 * math.Pi * rateHz / sampleRate
	for i := 0; i < length; i++ {
		th := step * float64(i)
		a.X[i] = h * math.Cos(th)
		a.Y[i] = h * math.Sin(th)
		a.Z[i] = v
	}
	return a
}

// Disturb scales samples [start, start+length) so that their magnitude grows
// by extra, keeping the direction. It modifies a in place and returns it.
func Disturb(a Axes, start, length int, extra float64) Axes {
	end := start + length
	if end > a.Len() {
		end = a.Len()
	}
	for i := max(start, 0); i < end; i++ {
		m := math.Sqrt(a.X[i]*a.X[i] + a.Y[i]*a.Y[i] + a.Z[i]*a.Z[i])
		if m == 0 {
			continue
		}
		s := (m + extra) / m
		a.X[i] *= s
		a.Y[i] *= s
		a.Z[i] *= s
	}
	return a
}

// NoisyField returns a fixed-direction field whose magnitude is
// magnitude + uniform noise in [-amplitude, amplitude], with a fixed seed.
func NoisyField(seed int64, magnitude, amplitude float64, length int) Axes {
	a := Axes{
		X: make([]float64, length),
		Y: make([]float64, length),
		Z: make([]float64, length),
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < length; i++ {
		m := magnitude + (rng.Float64()*2-1)*amplitude
		a.X[i] = m * math.Cos(dip)
		a.Z[i] = m * math.Sin(dip)
	}
	return a
}

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}
