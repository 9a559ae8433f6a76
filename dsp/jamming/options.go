package jamming

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwbudde/algo-magjam/calibration"
	"github.com/sirupsen/logrus"
)

const (
	defaultEMARate           = 0.0001
	defaultCalibrationMargin = 10.0
	defaultWindow            = 10.0
)

// Clock supplies the time used for the state elapsed timer.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config holds the tunables of a [Filter].
type Config struct {
	// EMARate is the learning rate of the baseline average, in (0, 1).
	EMARate float64

	// CalibrationMargin is the half-width of the clamp band placed around a
	// calibrated reference field strength.
	CalibrationMargin float64

	// ElapsedTimer enables the state elapsed timer. When disabled,
	// StateElapsedTime always reports zero and Update never reads the clock.
	ElapsedTimer bool

	// SeedFromFirstSample replaces the baseline with the first reading
	// after Begin.
	SeedFromFirstSample bool

	// Window is the initial full width of the normal band.
	Window float64

	Verifier calibration.Verifier
	Clock    Clock
	Logger   logrus.FieldLogger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the configuration used by [New] without options.
func DefaultConfig() Config {
	return Config{
		EMARate:           defaultEMARate,
		CalibrationMargin: defaultCalibrationMargin,
		ElapsedTimer:      true,
		Window:            defaultWindow,
		Verifier:          calibration.DefaultVerifier(),
		Clock:             systemClock{},
		Logger:            logrus.StandardLogger(),
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEMARate sets the baseline learning rate. Values outside (0, 1) are ignored.
// Smaller rates adapt more slowly and resist transient disturbance better.
func WithEMARate(rate float64) Option {
	return func(cfg *Config) {
		if rate > 0 && rate < 1 {
			cfg.EMARate = rate
		}
	}
}

// WithCalibrationMargin sets the clamp half-width used around a calibrated
// field strength. Non-positive values are ignored.
func WithCalibrationMargin(margin float64) Option {
	return func(cfg *Config) {
		if margin > 0 {
			cfg.CalibrationMargin = margin
		}
	}
}

// WithElapsedTimer enables or disables the state elapsed timer.
func WithElapsedTimer(enabled bool) Option {
	return func(cfg *Config) {
		cfg.ElapsedTimer = enabled
	}
}

// WithFirstSampleSeed makes the first reading after Begin replace the baseline.
func WithFirstSampleSeed() Option {
	return func(cfg *Config) {
		cfg.SeedFromFirstSample = true
	}
}

// WithFieldIntensityWindow sets the initial window width. It applies the same
// range check as [Filter.SetFieldIntensityWindow].
func WithFieldIntensityWindow(width float64) Option {
	return func(cfg *Config) {
		if validWindow(width) {
			cfg.Window = width
		}
	}
}

// WithVerifier sets the calibration blob verifier. Nil is ignored.
func WithVerifier(v calibration.Verifier) Option {
	return func(cfg *Config) {
		if v != nil {
			cfg.Verifier = v
		}
	}
}

// WithClock sets the clock used by the elapsed timer. Nil is ignored.
func WithClock(c Clock) Option {
	return func(cfg *Config) {
		if c != nil {
			cfg.Clock = c
		}
	}
}

// WithLogger sets the logger used by Begin. Nil is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Variant names a preset of the tunables that historically shipped as
// separate filters.
type Variant int

const (
	// VariantDefault leaves DefaultConfig untouched.
	VariantDefault Variant = iota

	// VariantSeeded seeds the baseline from the first sample, adapts with
	// rate 0.0001 and has no elapsed timer.
	VariantSeeded

	// VariantCalibrated adapts with rate 0.0001, uses a calibration margin
	// of 10 and has no elapsed timer.
	VariantCalibrated

	// VariantTimed adapts with rate 0.001, uses a calibration margin of 8
	// and runs the elapsed timer.
	VariantTimed
)

var variantNames = map[Variant]string{
	VariantDefault:    "default",
	VariantSeeded:     "seeded",
	VariantCalibrated: "calibrated",
	VariantTimed:      "timed",
}

// String returns the preset name.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the preset with the given name.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return VariantDefault, fmt.Errorf("jamming: unknown variant %q", name)
}

// WithVariant applies a preset. Options listed after it override single fields.
func WithVariant(v Variant) Option {
	return func(cfg *Config) {
		switch v {
		case VariantSeeded:
			cfg.EMARate = 0.0001
			cfg.SeedFromFirstSample = true
			cfg.ElapsedTimer = false
		case VariantCalibrated:
			cfg.EMARate = 0.0001
			cfg.CalibrationMargin = 10
			cfg.SeedFromFirstSample = false
			cfg.ElapsedTimer = false
		case VariantTimed:
			cfg.EMARate = 0.001
			cfg.CalibrationMargin = 8
			cfg.SeedFromFirstSample = false
			cfg.ElapsedTimer = true
		}
	}
}
