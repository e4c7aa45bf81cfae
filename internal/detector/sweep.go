package detector

import "BlockSentinel/internal/model"

// detectSweep scans up to checkBars candles after the zone origin for a
// stop-hunt pattern: price pierces the zone boundary on a long wick, then
// closes back inside. Returns the offset of the first sweep found; the scan
// stops at the first occurrence. Zero-range candles are skipped because the
// wick ratio is undefined for them.
func detectSweep(bars []model.OHLCV, zoneIdx int, zoneLow, zoneHigh float64, dir model.Direction, checkBars int, wickRatio float64) (bool, int) {
	end := zoneIdx + checkBars + 1
	if end > len(bars) {
		end = len(bars)
	}

	for i := zoneIdx + 1; i < end; i++ {
		c := bars[i]
		candleRange := c.Range()
		if candleRange == 0 {
			continue
		}

		if dir == model.Bullish {
			if c.Low < zoneLow {
				bodyLow := c.Open
				if c.Close < bodyLow {
					bodyLow = c.Close
				}
				lowerWick := bodyLow - c.Low
				if lowerWick/candleRange >= wickRatio && c.Close > zoneLow {
					return true, i - zoneIdx
				}
			}
		} else {
			if c.High > zoneHigh {
				bodyHigh := c.Open
				if c.Close > bodyHigh {
					bodyHigh = c.Close
				}
				upperWick := c.High - bodyHigh
				if upperWick/candleRange >= wickRatio && c.Close < zoneHigh {
					return true, i - zoneIdx
				}
			}
		}
	}
	return false, 0
}
