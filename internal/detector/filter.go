package detector

import "BlockSentinel/internal/model"

// isCandidate reports whether a candle is shaped like the start of an order
// block in the given direction: a large body against the coming move with only
// a small wick on the opposing side.
//
// A bullish block forms on a down candle (sellers absorbed before the rally),
// a bearish block on an up candle. The two tests are mutually exclusive per
// candle because of the opposite body-direction requirements.
func isCandidate(c model.OHLCV, unit float64, dir model.Direction, p Params) bool {
	body := c.Body()
	if body < unit*p.BodyMinRatio {
		return false
	}

	if dir == model.Bullish {
		if !c.IsDown() {
			return false
		}
		upperWick := c.High - c.Open
		return upperWick <= body*p.WickMaxRatio
	}

	if !c.IsUp() {
		return false
	}
	lowerWick := c.Open - c.Low
	return lowerWick <= body*p.WickMaxRatio
}
