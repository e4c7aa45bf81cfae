package detector

import "BlockSentinel/internal/model"

// confirmImpulse inspects the lookahead window after a candidate candle and
// decides whether a strong, sustained directional move followed.
//
// Confirmation requires both enough directional candles and a net move of at
// least MinNetMove volatility units beyond the candidate's extreme. On success
// the returned strength in [0,1] averages two clamped components: the
// directional-candle share of the window and the net-move ratio against twice
// the minimum.
func confirmImpulse(bars []model.OHLCV, idx int, dir model.Direction, unit float64, p Params) (bool, float64) {
	end := idx + p.Lookahead + 1
	if end > len(bars) {
		end = len(bars)
	}
	if end-idx < 3 {
		return false, 0
	}

	window := bars[idx+1 : end]

	dirCandles := 0
	var netMove float64
	if dir == model.Bullish {
		maxHigh := window[0].High
		for _, c := range window {
			if c.IsUp() {
				dirCandles++
			}
			if c.High > maxHigh {
				maxHigh = c.High
			}
		}
		netMove = maxHigh - bars[idx].High
	} else {
		minLow := window[0].Low
		for _, c := range window {
			if c.IsDown() {
				dirCandles++
			}
			if c.Low < minLow {
				minLow = c.Low
			}
		}
		netMove = bars[idx].Low - minLow
	}

	if dirCandles < p.MinDirCandles {
		return false, 0
	}

	var netMoveRatio float64
	if unit > 0 {
		netMoveRatio = netMove / unit
	}
	if netMoveRatio < p.MinNetMove {
		return false, 0
	}

	dirScore := clamp01(float64(dirCandles) / float64(p.Lookahead))
	netScore := clamp01(netMoveRatio / (p.MinNetMove * 2))
	return true, (dirScore + netScore) / 2
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
