package jamming

import (
	"testing"
	"time"

	"github.com/cwbudde/algo-magjam/calibration"
)

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithEMARate(0.001),
		WithCalibrationMargin(8),
		WithElapsedTimer(false),
		WithFirstSampleSeed(),
		WithFieldIntensityWindow(20),
	)

	if cfg.EMARate != 0.001 {
		t.Errorf("EMARate = %v, want 0.001", cfg.EMARate)
	}
	if cfg.CalibrationMargin != 8 {
		t.Errorf("CalibrationMargin = %v, want 8", cfg.CalibrationMargin)
	}
	if cfg.ElapsedTimer {
		t.Error("ElapsedTimer = true, want false")
	}
	if !cfg.SeedFromFirstSample {
		t.Error("SeedFromFirstSample = false, want true")
	}
	if cfg.Window != 20 {
		t.Errorf("Window = %v, want 20", cfg.Window)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyOptions(
		WithEMARate(0),
		WithEMARate(1),
		WithEMARate(-0.1),
		WithCalibrationMargin(0),
		WithFieldIntensityWindow(0.5),
		WithFieldIntensityWindow(1001),
		WithVerifier(nil),
		WithClock(nil),
		WithLogger(nil),
		nil,
	)
	def := DefaultConfig()

	if cfg.EMARate != def.EMARate || cfg.CalibrationMargin != def.CalibrationMargin || cfg.Window != def.Window {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Verifier == nil || cfg.Clock == nil || cfg.Logger == nil {
		t.Fatal("nil collaborator replaced a default")
	}
}

func TestWithVariant(t *testing.T) {
	tests := []struct {
		variant Variant
		rate    float64
		margin  float64
		timer   bool
		seed    bool
	}{
		{VariantDefault, defaultEMARate, defaultCalibrationMargin, true, false},
		{VariantSeeded, 0.0001, defaultCalibrationMargin, false, true},
		{VariantCalibrated, 0.0001, 10, false, false},
		{VariantTimed, 0.001, 8, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			cfg := ApplyOptions(WithVariant(tt.variant))
			if cfg.EMARate != tt.rate || cfg.CalibrationMargin != tt.margin ||
				cfg.ElapsedTimer != tt.timer || cfg.SeedFromFirstSample != tt.seed {
				t.Fatalf("cfg = %+v", cfg)
			}
		})
	}
}

func TestVariantOverride(t *testing.T) {
	cfg := ApplyOptions(WithVariant(VariantTimed), WithEMARate(0.01))
	if cfg.EMARate != 0.01 || cfg.CalibrationMargin != 8 {
		t.Fatalf("cfg = %+v, want rate 0.01 and margin 8", cfg)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{VariantDefault, VariantSeeded, VariantCalibrated, VariantTimed} {
		got, err := ParseVariant(" " + v.String() + " ")
		if err != nil || got != v {
			t.Fatalf("ParseVariant(%q) = %v, %v", v.String(), got, err)
		}
	}
	if got, err := ParseVariant("TIMED"); err != nil || got != VariantTimed {
		t.Fatalf("ParseVariant(TIMED) = %v, %v", got, err)
	}
	if _, err := ParseVariant("kalman"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if s := Variant(42).String(); s != "Variant(42)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestNewUsesConfiguredWindow(t *testing.T) {
	f := New(WithFieldIntensityWindow(16))
	if f.Threshold() != 8 {
		t.Fatalf("Threshold() = %v, want 8", f.Threshold())
	}
	if f.Config().Window != 16 {
		t.Fatalf("Config().Window = %v, want 16", f.Config().Window)
	}
}

func TestSystemClockAdvances(t *testing.T) {
	c := DefaultConfig().Clock
	a := c.Now()
	time.Sleep(time.Millisecond)
	if !c.Now().After(a) {
		t.Fatal("system clock did not advance")
	}
}

func TestDefaultVerifierMatchesEncoder(t *testing.T) {
	blob := calibration.Encode(calibration.Calibration{FieldStrength: 47})
	if !DefaultConfig().Verifier.Verify(blob) {
		t.Fatal("default verifier rejects an encoded blob")
	}
}
