package collector

import (
	"context"
	"fmt"
	"time"

	"BlockSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Candles map[string][]model.OHLCV // keyed by "SYMBOL_TIMEFRAME"
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ context.Context, symbol, timeframe string, limit int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Candles[symbol+"_"+timeframe]; ok {
		if len(bars) > limit {
			return bars[len(bars)-limit:], nil
		}
		return bars, nil
	}
	return generateMockBars(100, limit), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().Add(-time.Duration(count-i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

// Collector retrieves immutable candle snapshots for the scanner. Each call
// returns a fresh slice the engine gets exclusive read access to.
type Collector struct {
	Fetcher Fetcher
	History int
}

// NewCollector creates a Collector that fetches history candles per snapshot.
func NewCollector(fetcher Fetcher, history int) *Collector {
	return &Collector{Fetcher: fetcher, History: history}
}

// Snapshot fetches the most recent candles for one symbol/timeframe pair.
func (c *Collector) Snapshot(ctx context.Context, symbol, timeframe string) ([]model.OHLCV, error) {
	bars, err := c.Fetcher.FetchCandles(ctx, symbol, timeframe, c.History)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", symbol, timeframe, err)
	}
	return bars, nil
}
