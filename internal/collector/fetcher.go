package collector

import (
	"context"

	"BlockSentinel/internal/model"
)

// Fetcher defines the interface for retrieving candle data.
type Fetcher interface {
	// FetchCandles returns up to limit candles for the symbol/timeframe pair,
	// oldest first.
	FetchCandles(ctx context.Context, symbol, timeframe string, limit int) ([]model.OHLCV, error)
	Name() string
}
