package detector

import (
	"math"
	"testing"
)

func TestScoreZone_StrongVsWeak(t *testing.T) {
	p := DefaultParams()

	strong := scoreZone(1.5, 0.8, 3, 2.0, true, p)
	if strong <= 0.5 {
		t.Errorf("strong zone should score above 0.5, got %g", strong)
	}

	weak := scoreZone(0.3, 0.2, 1, 1.0, false, p)
	if weak >= 0.5 {
		t.Errorf("weak zone should score below 0.5, got %g", weak)
	}
}

func TestScoreZone_Bounds(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name    string
		body    float64
		impulse float64
		touches int
		spike   float64
		sweep   bool
	}{
		{"all zero", 0, 0, 0, 0, false},
		{"all maxed", 10, 1, 100, 50, true},
		{"volume below average", 1, 0.5, 2, 0.4, false},
		{"neutral volume", 1, 0.5, 2, 1.0, true},
	}
	for _, tt := range tests {
		got := scoreZone(tt.body, tt.impulse, tt.touches, tt.spike, tt.sweep, p)
		if got < 0 || got > 1 {
			t.Errorf("%s: score %g out of [0,1]", tt.name, got)
		}
	}
}

func TestScoreZone_Rounding(t *testing.T) {
	p := DefaultParams()
	got := scoreZone(1.0, 1.0/3.0, 1, 1.0, false, p)
	if math.Round(got*1000) != got*1000 {
		t.Errorf("score %v is not rounded to 3 decimals", got)
	}
}

func TestScoreZone_NoVolumeBonusAtOrBelowAverage(t *testing.T) {
	p := DefaultParams()
	at := scoreZone(1.0, 0.5, 2, 1.0, false, p)
	below := scoreZone(1.0, 0.5, 2, 0.5, false, p)
	if at != below {
		t.Errorf("spike <= 1.0 must earn no volume score: %g vs %g", at, below)
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{"defaults", DefaultParams().Weights, false},
		{"equal fifths", Weights{0.2, 0.2, 0.2, 0.2, 0.2}, false},
		{"sum too low", Weights{0.2, 0.2, 0.2, 0.2, 0.1}, true},
		{"sum too high", Weights{0.3, 0.3, 0.2, 0.2, 0.2}, true},
		{"all zero", Weights{}, true},
		{"negative weight", Weights{-0.2, 0.4, 0.4, 0.2, 0.2}, true},
		{"within tolerance", Weights{0.2, 0.2, 0.2, 0.2, 0.2000000001}, false},
	}
	for _, tt := range tests {
		err := tt.w.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestParams_Validate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params must validate: %v", err)
	}

	p := DefaultParams()
	p.ATRPeriod = 0
	if err := p.Validate(); err == nil {
		t.Error("expected error for zero atr_period")
	}

	p = DefaultParams()
	p.Weights.Sweep = 0.5
	if err := p.Validate(); err == nil {
		t.Error("expected error for bad weight sum")
	}
}
