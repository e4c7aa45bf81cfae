package model

// Direction indicates which side of the market a zone favors.
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
)

// Zone is a detected order block: a price band expected to attract
// future interest, with a confidence score in [0,1].
type Zone struct {
	OriginIndex int
	Low         float64
	High        float64
	Direction   Direction
	Score       float64
	Touches     int
	HasSweep    bool
}

// Height returns the price extent of the zone.
func (z Zone) Height() float64 {
	return z.High - z.Low
}

// Contains reports whether a candle's range intersects the zone band.
func (z Zone) Contains(c OHLCV) bool {
	return c.Low <= z.High && c.High >= z.Low
}
