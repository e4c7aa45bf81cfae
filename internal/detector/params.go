package detector

import (
	"fmt"
	"math"
)

// weightTolerance is the floating tolerance for the weight-sum check.
const weightTolerance = 1e-6

// volumeWindow is the trailing window used for the volume-spike baseline.
const volumeWindow = 20

// Weights holds the five scoring weights. They must sum to 1.0; Validate is
// called once at configuration load, never per scoring call.
type Weights struct {
	BodySize float64
	Impulse  float64
	Touches  float64
	Volume   float64
	Sweep    float64
}

// Validate checks the weight-sum invariant.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"body_size": w.BodySize,
		"impulse":   w.Impulse,
		"touches":   w.Touches,
		"volume":    w.Volume,
		"sweep":     w.Sweep,
	} {
		if v < 0 {
			return fmt.Errorf("score weight %s must not be negative, got %g", name, v)
		}
	}
	sum := w.BodySize + w.Impulse + w.Touches + w.Volume + w.Sweep
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("score weights must sum to 1.0, got %g", sum)
	}
	return nil
}

// Params is the full parameter set for one scan. All thresholds that measure
// price distance are expressed in volatility units (ATR * ATRMult).
type Params struct {
	ATRPeriod       int     // volatility window
	ATRMult         float64 // threshold scaling applied to ATR
	BodyMinRatio    float64 // minimum candidate body, in volatility units
	WickMaxRatio    float64 // maximum opposing wick, as a fraction of the body
	Lookahead       int     // impulse window length
	MinDirCandles   int     // directional candles required within the window
	MinNetMove      float64 // minimum net move, in volatility units
	TouchesRequired int     // minimum validated touches to keep a zone
	ExpiryBars      int     // maximum zone age to keep
	MinVolumeSpike  float64 // documented default for callers; not a hard filter
	SweepCheckBars  int     // bars inspected for a liquidity sweep
	SweepWickRatio  float64 // minimum wick share of range for a sweep
	MergeThreshold  float64 // overlap ratio at which same-direction zones merge
	MaxTouches      int     // touch-score normalization cap
	Weights         Weights
}

// DefaultParams returns the reference parameter set.
func DefaultParams() Params {
	return Params{
		ATRPeriod:       14,
		ATRMult:         1.0,
		BodyMinRatio:    0.5,
		WickMaxRatio:    0.3,
		Lookahead:       10,
		MinDirCandles:   6,
		MinNetMove:      1.5,
		TouchesRequired: 1,
		ExpiryBars:      100,
		MinVolumeSpike:  1.5,
		SweepCheckBars:  3,
		SweepWickRatio:  0.6,
		MergeThreshold:  0.5,
		MaxTouches:      5,
		Weights: Weights{
			BodySize: 0.20,
			Impulse:  0.30,
			Touches:  0.20,
			Volume:   0.15,
			Sweep:    0.15,
		},
	}
}

// Validate checks structural constraints on the parameter set.
func (p Params) Validate() error {
	if p.ATRPeriod <= 0 {
		return fmt.Errorf("atr_period must be positive, got %d", p.ATRPeriod)
	}
	if p.Lookahead <= 0 {
		return fmt.Errorf("lookahead must be positive, got %d", p.Lookahead)
	}
	if p.MaxTouches <= 0 {
		return fmt.Errorf("max_touches must be positive, got %d", p.MaxTouches)
	}
	if p.TouchesRequired < 0 {
		return fmt.Errorf("touches_required must not be negative, got %d", p.TouchesRequired)
	}
	if p.MergeThreshold <= 0 || p.MergeThreshold > 1 {
		return fmt.Errorf("zone_merge_threshold must be in (0,1], got %g", p.MergeThreshold)
	}
	return p.Weights.Validate()
}
