package detector

import "math"

// scoreZone combines the independent zone signals into one weighted
// confidence value in [0,1], rounded to 3 decimals.
//
// Normalization: body maxes out at 2 volatility units, volume at 3x the
// trailing average (a spike at or below 1x earns nothing), touches at
// MaxTouches. Impulse strength arrives already normalized. The result is
// guaranteed in [0,1] because each component is clamped and the weights sum
// to 1.0 (validated at configuration load).
func scoreZone(bodyRatio, impulseStrength float64, touches int, volumeSpike float64, hasSweep bool, p Params) float64 {
	bodyScore := clamp01(bodyRatio / 2.0)
	impulseScore := impulseStrength
	touchScore := clamp01(float64(touches) / float64(p.MaxTouches))

	volumeScore := 0.0
	if volumeSpike > 1.0 {
		volumeScore = clamp01((volumeSpike - 1.0) / 2.0)
	}

	sweepScore := 0.0
	if hasSweep {
		sweepScore = 1.0
	}

	w := p.Weights
	total := w.BodySize*bodyScore +
		w.Impulse*impulseScore +
		w.Touches*touchScore +
		w.Volume*volumeScore +
		w.Sweep*sweepScore

	return math.Round(total*1000) / 1000
}
