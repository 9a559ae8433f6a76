// Package jamming detects magnetic disturbance in a 3-axis magnetometer
// stream so that an attitude estimator can ignore the magnetometer while the
// field is distorted.
//
// A [Filter] tracks the ambient field intensity with a slow exponential
// moving average, clamped to a plausible band and protected against
// outliers, and flags jamming whenever the instantaneous intensity leaves a
// window around that baseline. Once flagged, jamming is held for one second
// of samples before it is re-evaluated, so the status does not flutter
// while a disturbance source moves near the sensor.
//
// A persisted calibration blob (see package calibration) can seed the
// baseline with the reference field strength measured during calibration
// and narrows the clamp band around it.
//
// Filters are single-threaded and hold no external resources. Use one
// instance per magnetometer.
package jamming
