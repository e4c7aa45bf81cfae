package calculator

import (
	"math"

	"BlockSentinel/internal/model"
)

// TrueRange computes the per-candle true range series.
// The value at index 0 is NaN (no previous close to compare against).
func TrueRange(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	if len(bars) == 0 {
		return tr
	}
	tr[0] = math.NaN()
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

// ATR computes the Average True Range as a simple rolling mean of the true
// range over the given period. The output has the same length as the input;
// indices without enough history hold NaN. The first defined value sits at
// index `period` (the rolling window must not cross the undefined TR at 0).
func ATR(bars []model.OHLCV, period int) []float64 {
	n := len(bars)
	atr := make([]float64, n)
	for i := range atr {
		atr[i] = math.NaN()
	}
	if period <= 0 || n < period+1 {
		return atr
	}

	tr := TrueRange(bars)

	// Running window sum over tr[i-period+1 .. i], valid once the window
	// no longer includes tr[0].
	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	atr[period] = sum / float64(period)
	for i := period + 1; i < n; i++ {
		sum += tr[i] - tr[i-period]
		atr[i] = sum / float64(period)
	}
	return atr
}
