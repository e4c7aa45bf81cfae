package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Range returns the full high-to-low extent of the candle.
func (c OHLCV) Range() float64 {
	return c.High - c.Low
}

// Body returns the absolute open-to-close size of the candle.
func (c OHLCV) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// IsUp reports whether the candle closed above its open.
func (c OHLCV) IsUp() bool { return c.Close > c.Open }

// IsDown reports whether the candle closed below its open.
func (c OHLCV) IsDown() bool { return c.Close < c.Open }
