// Package detector implements the order-block detection and scoring engine.
//
// A scan is a pure function of a candle series and a parameter set: it holds
// no state between invocations, performs no I/O, and rerunning it on the same
// inputs reproduces identical results. Callers that scan many
// instrument/timeframe pairs may do so concurrently as long as each call gets
// its own immutable series snapshot.
package detector

import (
	"math"

	"BlockSentinel/internal/calculator"
	"BlockSentinel/internal/model"
)

// Scan walks the eligible candle range and returns all scored, validated
// zones. A series shorter than ATRPeriod+Lookahead+1 candles yields an empty
// result, not an error. Output order is by origin index before merging and is
// not guaranteed afterwards.
func Scan(bars []model.OHLCV, p Params) []model.Zone {
	n := len(bars)
	if n < p.ATRPeriod+p.Lookahead+1 {
		return nil
	}

	atr := calculator.ATR(bars, p.ATRPeriod)
	avgVolume := calculator.RollingVolumeMean(bars, volumeWindow)

	var zones []model.Zone
	for i := p.ATRPeriod; i < n-p.Lookahead; i++ {
		unit := atr[i] * p.ATRMult
		if math.IsNaN(unit) || unit == 0 {
			continue
		}

		for _, dir := range []model.Direction{model.Bullish, model.Bearish} {
			if z, ok := evaluate(bars, i, dir, unit, avgVolume[i], p); ok {
				zones = append(zones, z)
			}
		}
	}

	zones = MergeZones(zones, p.MergeThreshold)

	// Final lifecycle filters: minimum touch validation and zone age.
	lastIdx := n - 1
	kept := zones[:0]
	for _, z := range zones {
		if z.Touches < p.TouchesRequired {
			continue
		}
		if lastIdx-z.OriginIndex > p.ExpiryBars {
			continue
		}
		kept = append(kept, z)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// evaluate runs the single-candle pipeline for one direction: candidate
// filter, impulse confirmation, then sweep/touch/volume enrichment and
// scoring.
func evaluate(bars []model.OHLCV, i int, dir model.Direction, unit, avgVolume float64, p Params) (model.Zone, bool) {
	if !isCandidate(bars[i], unit, dir, p) {
		return model.Zone{}, false
	}

	confirmed, impulseStrength := confirmImpulse(bars, i, dir, unit, p)
	if !confirmed {
		return model.Zone{}, false
	}

	zoneLow, zoneHigh := bars[i].Low, bars[i].High

	hasSweep, _ := detectSweep(bars, i, zoneLow, zoneHigh, dir, p.SweepCheckBars, p.SweepWickRatio)
	touches := countTouches(bars, i, zoneLow, zoneHigh, dir, len(bars)-1)

	// An undefined or non-positive trailing average defaults the spike to a
	// neutral 1.0: no volume bonus, no penalty.
	volumeSpike := 1.0
	if !math.IsNaN(avgVolume) && avgVolume > 0 {
		volumeSpike = bars[i].Volume / avgVolume
	}

	bodyRatio := bars[i].Body() / unit
	score := scoreZone(bodyRatio, impulseStrength, touches, volumeSpike, hasSweep, p)

	return model.Zone{
		OriginIndex: i,
		Low:         zoneLow,
		High:        zoneHigh,
		Direction:   dir,
		Score:       score,
		Touches:     touches,
		HasSweep:    hasSweep,
	}, true
}
