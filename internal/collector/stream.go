package collector

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"BlockSentinel/internal/model"
)

const (
	binanceWSBaseURL      = "wss://stream.binance.com:9443/ws"
	initialReconnectDelay = 1 * time.Second
	maxReconnectDelay     = 5 * time.Minute
	wsHandshakeTimeout    = 10 * time.Second
	wsReadTimeout         = 60 * time.Second
	wsPingInterval        = 20 * time.Second
)

// SeriesHandler receives a fresh series snapshot every time a candle closes.
type SeriesHandler func(symbol, timeframe string, bars []model.OHLCV)

// klineEvent is the Binance combined kline stream payload.
type klineEvent struct {
	EventType string `json:"e"`
	Kline     struct {
		OpenTime int64  `json:"t"`
		Symbol   string `json:"s"`
		Interval string `json:"i"`
		Open     string `json:"o"`
		High     string `json:"h"`
		Low      string `json:"l"`
		Close    string `json:"c"`
		Volume   string `json:"v"`
		Closed   bool   `json:"x"`
	} `json:"k"`
}

// klineBuffer keeps a sliding window of closed candles per stream.
type klineBuffer struct {
	mu      sync.Mutex
	max     int
	buffers map[string][]model.OHLCV
}

func newKlineBuffer(max int) *klineBuffer {
	return &klineBuffer{max: max, buffers: make(map[string][]model.OHLCV)}
}

// add appends a closed candle and returns a copy of the window, so the
// scanner never shares backing storage with the buffer.
func (b *klineBuffer) add(symbol, timeframe string, bar model.OHLCV) []model.OHLCV {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := symbol + "_" + timeframe
	buf := append(b.buffers[key], bar)
	if len(buf) > b.max {
		buf = buf[len(buf)-b.max:]
	}
	b.buffers[key] = buf

	snapshot := make([]model.OHLCV, len(buf))
	copy(snapshot, buf)
	return snapshot
}

// StreamWatcher maintains a websocket subscription to Binance kline streams
// and hands closed-candle series snapshots to its handler. Reconnects with
// exponential backoff; the backoff resets after a successful connection.
type StreamWatcher struct {
	Symbols    []string
	Timeframes []string
	Handler    SeriesHandler
	Logger     *logrus.Logger

	buffer *klineBuffer
}

// NewStreamWatcher creates a watcher buffering up to bufferSize candles per
// symbol/timeframe pair.
func NewStreamWatcher(symbols, timeframes []string, bufferSize int, handler SeriesHandler, logger *logrus.Logger) *StreamWatcher {
	return &StreamWatcher{
		Symbols:    symbols,
		Timeframes: timeframes,
		Handler:    handler,
		Logger:     logger,
		buffer:     newKlineBuffer(bufferSize),
	}
}

func (w *StreamWatcher) streamURL() string {
	streams := make([]string, 0, len(w.Symbols)*len(w.Timeframes))
	for _, symbol := range w.Symbols {
		for _, tf := range w.Timeframes {
			streams = append(streams, strings.ToLower(binanceSymbol(symbol))+"@kline_"+tf)
		}
	}
	return binanceWSBaseURL + "/" + strings.Join(streams, "/")
}

// Run blocks until the context is cancelled, reconnecting on any error.
func (w *StreamWatcher) Run(ctx context.Context) {
	delay := initialReconnectDelay
	for {
		if ctx.Err() != nil {
			return
		}

		if err := w.connectAndListen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			w.Logger.Errorf("[stream] connection lost: %v, reconnecting in %v", err, delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxReconnectDelay {
				delay = maxReconnectDelay
			}
			continue
		}
		delay = initialReconnectDelay
	}
}

func (w *StreamWatcher) connectAndListen(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, w.streamURL(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	w.Logger.Infof("[stream] connected, watching %d symbols on %d timeframes",
		len(w.Symbols), len(w.Timeframes))

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		w.handleMessage(message)
	}
}

func (w *StreamWatcher) handleMessage(message []byte) {
	var evt klineEvent
	if err := json.Unmarshal(message, &evt); err != nil {
		w.Logger.Warnf("[stream] decode message: %v", err)
		return
	}
	if evt.EventType != "kline" || !evt.Kline.Closed {
		return
	}

	bar, err := evt.bar()
	if err != nil {
		w.Logger.Warnf("[stream] parse kline %s %s: %v", evt.Kline.Symbol, evt.Kline.Interval, err)
		return
	}

	symbol := displaySymbol(evt.Kline.Symbol)
	bars := w.buffer.add(symbol, evt.Kline.Interval, bar)
	w.Handler(symbol, evt.Kline.Interval, bars)
}

func (e *klineEvent) bar() (model.OHLCV, error) {
	fields := []string{e.Kline.Open, e.Kline.High, e.Kline.Low, e.Kline.Close, e.Kline.Volume}
	parsed := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.OHLCV{}, err
		}
		parsed[i] = v
	}
	return model.OHLCV{
		Time:   time.UnixMilli(e.Kline.OpenTime),
		Open:   parsed[0],
		High:   parsed[1],
		Low:    parsed[2],
		Close:  parsed[3],
		Volume: parsed[4],
	}, nil
}

// displaySymbol converts API format back to display format for alerts.
func displaySymbol(apiSymbol string) string {
	for _, quote := range []string{"USDT", "BUSD", "USDC", "BTC", "ETH"} {
		if strings.HasSuffix(apiSymbol, quote) && len(apiSymbol) > len(quote) {
			return apiSymbol[:len(apiSymbol)-len(quote)] + "/" + quote
		}
	}
	return apiSymbol
}
