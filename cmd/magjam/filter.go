package main

import (
	"fmt"

	"github.com/cwbudde/algo-magjam/calibration"
	"github.com/cwbudde/algo-magjam/dsp/jamming"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// filterFlags holds the filter settings shared by the trace commands.
type filterFlags struct {
	rate        float64
	window      float64
	variant     string
	emaRate     float64
	margin      float64
	seed        bool
	calibPath   string
	calibOffset int64

	cmd *cobra.Command
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	ff.cmd = cmd
	fs.Float64VarP(&ff.rate, "rate", "r", 100, "magnetometer sample rate in Hz")
	fs.Float64VarP(&ff.window, "window", "w", 10, "full width of the normal band around the baseline")
	fs.StringVar(&ff.variant, "variant", "default", "filter preset: default, seeded, calibrated, timed")
	fs.Float64Var(&ff.emaRate, "ema-rate", 0, "baseline learning rate in (0, 1), overrides the preset")
	fs.Float64Var(&ff.margin, "margin", 0, "positive calibration clamp margin, overrides the preset")
	fs.BoolVar(&ff.seed, "seed", false, "seed the baseline from the first sample")
	fs.StringVar(&ff.calibPath, "calib", "", "EEPROM image holding the calibration blob")
	fs.Int64Var(&ff.calibOffset, "calib-offset", calibration.DefaultEEPROMOffset, "byte offset of the blob in the image")
}

// build returns a filter that has already been started.
func (ff *filterFlags) build(log logrus.FieldLogger) (*jamming.Filter, error) {
	if !(ff.rate > 0) {
		return nil, fmt.Errorf("sample rate must be positive: %v", ff.rate)
	}
	if !(ff.window >= 1 && ff.window <= 1000) {
		return nil, fmt.Errorf("window must be in [1, 1000]: %v", ff.window)
	}
	variant, err := jamming.ParseVariant(ff.variant)
	if err != nil {
		return nil, err
	}

	opts := []jamming.Option{
		jamming.WithVariant(variant),
		jamming.WithLogger(log),
	}
	if ff.changed("ema-rate") {
		if !(ff.emaRate > 0 && ff.emaRate < 1) {
			return nil, fmt.Errorf("ema rate must be in (0, 1): %v", ff.emaRate)
		}
		opts = append(opts, jamming.WithEMARate(ff.emaRate))
	}
	if ff.changed("margin") {
		if !(ff.margin > 0) {
			return nil, fmt.Errorf("margin must be positive: %v", ff.margin)
		}
		opts = append(opts, jamming.WithCalibrationMargin(ff.margin))
	}
	if ff.seed {
		opts = append(opts, jamming.WithFirstSampleSeed())
	}

	f := jamming.New(opts...)
	f.SetFieldIntensityWindow(ff.window)

	var src calibration.Source
	if ff.calibPath != "" {
		src = &calibration.FileStore{Path: ff.calibPath, Offset: ff.calibOffset}
	}
	f.BeginFrom(ff.rate, src)

	if ff.calibPath != "" {
		if _, ok := f.Calibration(); !ok {
			log.WithField("image", ff.calibPath).Warn("calibration not applied, using default field bounds")
		}
	}
	return f, nil
}

func (ff *filterFlags) changed(name string) bool {
	return ff.cmd != nil && ff.cmd.Flags().Changed(name)
}
