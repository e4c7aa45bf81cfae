package detector

import "BlockSentinel/internal/model"

// breakMargin is how far beyond the zone, as a fraction of zone height, a
// close must land to invalidate the zone.
const breakMargin = 0.1

// countTouches counts candles from zoneIdx+1 through endIdx whose range
// intersects the zone band. Counting stops permanently once a touching candle
// closes beyond the zone by more than breakMargin of its height on the
// invalidating side, so the count is frozen after a decisive break.
func countTouches(bars []model.OHLCV, zoneIdx int, zoneLow, zoneHigh float64, dir model.Direction, endIdx int) int {
	touches := 0
	zoneRange := zoneHigh - zoneLow

	for i := zoneIdx + 1; i <= endIdx && i < len(bars); i++ {
		c := bars[i]
		if c.Low > zoneHigh || c.High < zoneLow {
			continue
		}
		touches++

		if dir == model.Bullish && c.Close < zoneLow-zoneRange*breakMargin {
			break
		}
		if dir == model.Bearish && c.Close > zoneHigh+zoneRange*breakMargin {
			break
		}
	}
	return touches
}
