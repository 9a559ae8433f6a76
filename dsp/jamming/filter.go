package jamming

import (
	"math"
	"time"

	"github.com/cwbudde/algo-magjam/calibration"
	"github.com/cwbudde/algo-magjam/dsp/core"
	"github.com/sirupsen/logrus"
)

const (
	// Baseline state before Begin applies a calibration.
	defaultBaseline    = 42.0
	defaultFilteredMin = 23.0
	defaultFilteredMax = 62.0

	// Accepted full window widths.
	minWindow = 1.0
	maxWindow = 1000.0

	// Readings further than this many thresholds from the baseline do not
	// feed the average.
	outlierBandFactor = 3.0
)

// Filter is a magnetometer jamming detector.
//
// Call Begin once, then Update once per magnetometer sample. The accessors
// report the state as of the last Update.
//
// Update does not guard against NaN or Inf components. A NaN intensity is
// treated as an outlier, leaves the baseline unchanged and, once evaluated,
// reads as inside the normal band (all comparisons against NaN are false),
// which clears jamming. Inf intensities are outliers that always read as
// jamming.
//
// A Filter is not safe for concurrent use.
type Filter struct {
	cfg Config

	sampleFrequency float64

	fieldIntensity float64
	baseline       float64
	filteredMin    float64
	filteredMax    float64
	threshold      float64 // half of the window width

	active  bool
	counter int // samples held in the dwell window since the last evaluation

	seedPending bool

	changedAt time.Time
	elapsed   time.Duration

	calib      calibration.Calibration
	calibrated bool

	metrics Metrics

	scratch []float64
}

// New creates an inactive filter. Begin must be called before Update.
func New(opts ...Option) *Filter {
	f := &Filter{cfg: ApplyOptions(opts...)}
	f.threshold = f.cfg.Window / 2
	f.reset()
	return f
}

// Config returns the configuration the filter was built with.
func (f *Filter) Config() Config {
	return f.cfg
}

func (f *Filter) reset() {
	f.fieldIntensity = math.NaN()
	f.baseline = defaultBaseline
	f.filteredMin = defaultFilteredMin
	f.filteredMax = defaultFilteredMax
	f.active = false
	f.counter = 0
	f.seedPending = f.cfg.SeedFromFirstSample
	f.elapsed = 0
	if f.cfg.ElapsedTimer {
		f.changedAt = f.cfg.Clock.Now()
	}
	f.calib = calibration.Calibration{}
	f.calibrated = false
	f.metrics = Metrics{}
}

// Begin initialises the filter for sampleFrequency samples per second.
//
// sampleFrequency must be positive; it is not validated. blob is an optional
// calibration blob read by the host from persisted storage. If it passes the
// configured verifier and carries the calibration signature, its reference
// field strength becomes the initial baseline and the clamp band is narrowed
// to that strength plus or minus the calibration margin. A missing or
// invalid blob silently keeps the defaults.
//
// Begin overwrites all detection state and metrics. The window width is kept.
func (f *Filter) Begin(sampleFrequency float64, blob []byte) {
	f.sampleFrequency = sampleFrequency
	f.reset()

	log := f.cfg.Logger.WithField("sample_frequency", sampleFrequency)
	if blob == nil {
		log.Debug("jamming: no calibration, using default field bounds")
		return
	}

	c, err := calibration.Decode(blob, f.cfg.Verifier)
	if err != nil {
		log.WithError(err).Debug("jamming: calibration ignored, using default field bounds")
		return
	}

	ref := float64(c.FieldStrength)
	if math.IsNaN(ref) || math.IsInf(ref, 0) {
		log.WithField("field_strength", ref).Debug("jamming: calibration field strength not finite, using default field bounds")
		return
	}

	f.calib = c
	f.calibrated = true
	f.baseline = ref
	f.filteredMin = ref - f.cfg.CalibrationMargin
	f.filteredMax = ref + f.cfg.CalibrationMargin

	log.WithFields(logrus.Fields{
		"field_strength": ref,
		"filtered_min":   f.filteredMin,
		"filtered_max":   f.filteredMax,
	}).Debug("jamming: calibration applied")
}

// BeginFrom is Begin with the blob fetched from src. A nil source or a read
// error behaves like Begin without calibration.
func (f *Filter) BeginFrom(sampleFrequency float64, src calibration.Source) {
	if src == nil {
		f.Begin(sampleFrequency, nil)
		return
	}

	blob, err := src.ReadCalibration()
	if err != nil {
		f.cfg.Logger.WithError(err).Debug("jamming: calibration source failed")
		blob = nil
	}
	f.Begin(sampleFrequency, blob)
}

// Update advances the filter by one magnetometer sample.
func (f *Filter) Update(mx, my, mz float64) {
	f.step(core.Magnitude3(mx, my, mz))
}

func (f *Filter) step(m float64) {
	f.fieldIntensity = m
	f.metrics.Updates++

	if f.seedPending {
		f.baseline = m
		f.seedPending = false
	}

	band := f.threshold * outlierBandFactor
	if m < f.baseline+band && m > f.baseline-band {
		f.baseline += f.cfg.EMARate * (m - f.baseline)
	} else {
		f.metrics.OutliersRejected++
	}
	f.baseline = core.Clamp(f.baseline, f.filteredMin, f.filteredMax)

	var now time.Time
	if f.cfg.ElapsedTimer {
		now = f.cfg.Clock.Now()
		f.elapsed = now.Sub(f.changedAt)
	}

	if f.active {
		// Hold jamming for one second of samples without looking at the
		// reading at all.
		f.counter++
		if float64(f.counter) < f.sampleFrequency {
			f.metrics.DwellSkips++
			f.metrics.ActiveUpdates++
			return
		}
	}

	was := f.active
	f.active = m > f.baseline+f.threshold || m < f.baseline-f.threshold
	f.counter = 0

	if f.active {
		f.metrics.ActiveUpdates++
	}
	if f.active != was {
		if f.active {
			f.metrics.Activations++
		}
		if f.cfg.ElapsedTimer {
			f.changedAt = now
			f.elapsed = 0
		}
	}
}

// FieldIntensity returns the magnitude of the last sample, or NaN before
// the first Update.
func (f *Filter) FieldIntensity() float64 {
	return f.fieldIntensity
}

// FieldIntensityFiltered returns the baseline estimate of the ambient field.
func (f *Filter) FieldIntensityFiltered() float64 {
	return f.baseline
}

// JammingStatus reports whether the magnetometer should be ignored.
func (f *Filter) JammingStatus() bool {
	return f.active
}

// StateElapsedTime returns the time between the last jamming state change
// (or Begin) and the last Update. It is zero when the timer is disabled.
func (f *Filter) StateElapsedTime() time.Duration {
	return f.elapsed
}

// JammingCounter returns the number of samples held in the current dwell window.
func (f *Filter) JammingCounter() int {
	return f.counter
}

// SampleFrequency returns the rate given to Begin.
func (f *Filter) SampleFrequency() float64 {
	return f.sampleFrequency
}

// Bounds returns the clamp band of the baseline.
func (f *Filter) Bounds() (min, max float64) {
	return f.filteredMin, f.filteredMax
}

// Threshold returns the half-width of the normal band.
func (f *Filter) Threshold() float64 {
	return f.threshold
}

// FieldIntensityWindow returns the full width of the normal band.
func (f *Filter) FieldIntensityWindow() float64 {
	return 2 * f.threshold
}

// Calibration returns the calibration applied by Begin, if any.
func (f *Filter) Calibration() (calibration.Calibration, bool) {
	return f.calib, f.calibrated
}

// SetFieldIntensityWindow sets the full width of the normal band around the
// baseline. Widths outside [1, 1000], and NaN, are ignored without error.
func (f *Filter) SetFieldIntensityWindow(width float64) {
	if !validWindow(width) {
		return
	}
	f.threshold = width / 2
}

func validWindow(width float64) bool {
	return width >= minWindow && width <= maxWindow
}
