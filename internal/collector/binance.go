package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"BlockSentinel/internal/model"
)

const binanceBaseURL = "https://api.binance.com"

// BinanceFetcher implements Fetcher against the Binance spot klines API.
// The client is owned here and passed in by the caller's wiring; there is no
// package-level cached handle.
type BinanceFetcher struct {
	Client  *http.Client
	BaseURL string
	limiter *rate.Limiter
}

// NewBinanceFetcher creates a fetcher with optional proxy support. Requests
// are rate limited client-side to stay inside Binance's public API weight.
func NewBinanceFetcher(proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: binanceBaseURL,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceSymbol converts display format ("BTC/USDT") to API format ("BTCUSDT").
func binanceSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
}

// FetchCandles retrieves the most recent candles, oldest first.
// Binance returns klines as arrays: [openTime, open, high, low, close,
// volume, closeTime, ...] with prices encoded as strings.
func (f *BinanceFetcher) FetchCandles(ctx context.Context, symbol, timeframe string, limit int) ([]model.OHLCV, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(binanceSymbol(symbol)), url.QueryEscape(timeframe), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d for %s %s", resp.StatusCode, symbol, timeframe)
	}

	var raw [][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			continue
		}
		var openTime int64
		if err := json.Unmarshal(k[0], &openTime); err != nil {
			return nil, fmt.Errorf("binance kline time: %w", err)
		}
		prices := make([]float64, 5)
		for i := 1; i <= 5; i++ {
			var s string
			if err := json.Unmarshal(k[i], &s); err != nil {
				return nil, fmt.Errorf("binance kline field %d: %w", i, err)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("binance kline field %d: %w", i, err)
			}
			prices[i-1] = v
		}
		bars = append(bars, model.OHLCV{
			Time:   time.UnixMilli(openTime),
			Open:   prices[0],
			High:   prices[1],
			Low:    prices[2],
			Close:  prices[3],
			Volume: prices[4],
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
