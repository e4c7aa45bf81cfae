package calculator

import (
	"math"

	"BlockSentinel/internal/model"
)

// RollingVolumeMean computes a trailing simple mean of candle volume over the
// given window. Output length matches the input; the first window-1 indices
// hold NaN.
func RollingVolumeMean(bars []model.OHLCV, window int) []float64 {
	n := len(bars)
	avg := make([]float64, n)
	for i := range avg {
		avg[i] = math.NaN()
	}
	if window <= 0 || n < window {
		return avg
	}

	sum := 0.0
	for i := 0; i < window; i++ {
		sum += bars[i].Volume
	}
	avg[window-1] = sum / float64(window)
	for i := window; i < n; i++ {
		sum += bars[i].Volume - bars[i-window].Volume
		avg[i] = sum / float64(window)
	}
	return avg
}
