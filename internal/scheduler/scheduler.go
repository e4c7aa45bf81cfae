package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"BlockSentinel/internal/collector"
	"BlockSentinel/internal/detector"
	"BlockSentinel/internal/model"
	"BlockSentinel/internal/notifier"
	"BlockSentinel/internal/recorder"
	"BlockSentinel/internal/state"
)

// Scheduler drives periodic scans over every configured symbol/timeframe
// pair and funnels the results through dedup, notification and recording.
// The same Process path serves cron runs, manual /scan commands and
// websocket-driven candle closes.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Params    detector.Params
	Notifier  *notifier.TelegramNotifier
	Seen      *state.Manager
	Recorder  recorder.Recorder
	Logger    *logrus.Logger

	Symbols    []string
	Timeframes []string
	ScoreMin   float64
	Ctx        context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, params detector.Params,
	tn *notifier.TelegramNotifier, seen *state.Manager, rec recorder.Recorder,
	symbols, timeframes []string, scoreMin float64, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Params:     params,
		Notifier:   tn,
		Seen:       seen,
		Recorder:   rec,
		Logger:     logger,
		Symbols:    symbols,
		Timeframes: timeframes,
		ScoreMin:   scoreMin,
		Ctx:        ctx,
	}
}

// RegisterAll registers one polling job per symbol/timeframe pair.
func (s *Scheduler) RegisterAll(pollInterval time.Duration) error {
	spec := fmt.Sprintf("@every %s", pollInterval)
	for _, symbol := range s.Symbols {
		for _, tf := range s.Timeframes {
			symbol, tf := symbol, tf
			if _, err := s.Cron.AddFunc(spec, func() { s.scanPair(symbol, tf) }); err != nil {
				return fmt.Errorf("register scan %s %s: %w", symbol, tf, err)
			}
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("scheduler stopped")
}

// scanPair fetches a fresh snapshot for one pair and processes it.
func (s *Scheduler) scanPair(symbol, timeframe string) {
	ctx, cancel := context.WithTimeout(s.Ctx, 60*time.Second)
	defer cancel()

	bars, err := s.Collector.Snapshot(ctx, symbol, timeframe)
	if err != nil {
		s.Logger.Errorf("scan %s %s: %v", symbol, timeframe, err)
		return
	}
	s.Process(symbol, timeframe, bars)
}

// Process runs the detection engine over one series snapshot and alerts on
// every new zone at or above the score threshold. Returns the number of
// zones alerted.
func (s *Scheduler) Process(symbol, timeframe string, bars []model.OHLCV) int {
	started := time.Now()
	zones := detector.Scan(bars, s.Params)

	alerted := 0
	for _, z := range zones {
		if z.Score < s.ScoreMin {
			continue
		}

		key := state.ZoneKey(symbol, timeframe, z)
		isNew, err := s.Seen.MarkSeen(key)
		if err != nil {
			s.Logger.Errorf("persist seen state: %v", err)
		}
		if !isNew {
			continue
		}

		s.Logger.Infof("new %s order block: %s %s index=%d score=%.3f touches=%d sweep=%v",
			z.Direction, symbol, timeframe, z.OriginIndex, z.Score, z.Touches, z.HasSweep)

		msg := notifier.FormatZoneAlert(symbol, timeframe, z)
		if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
			s.Logger.Errorf("send alert: %v", err)
		}
		if err := s.Recorder.RecordZone(&recorder.ZoneEvent{
			Symbol: symbol, Timeframe: timeframe, Zone: z,
		}); err != nil {
			s.Logger.Errorf("record zone: %v", err)
		}
		alerted++
	}

	if err := s.Recorder.RecordScan(&recorder.ScanEvent{
		Symbol:    symbol,
		Timeframe: timeframe,
		Candles:   len(bars),
		ZonesRaw:  len(zones),
		ZonesKept: alerted,
		Duration:  time.Since(started),
	}); err != nil {
		s.Logger.Errorf("record scan: %v", err)
	}
	return alerted
}

// RunAllNow scans every pair immediately and returns alert counts per pair.
func (s *Scheduler) RunAllNow() map[string]int {
	results := make(map[string]int)
	for _, symbol := range s.Symbols {
		for _, tf := range s.Timeframes {
			ctx, cancel := context.WithTimeout(s.Ctx, 60*time.Second)
			bars, err := s.Collector.Snapshot(ctx, symbol, tf)
			cancel()
			if err != nil {
				s.Logger.Errorf("scan %s %s: %v", symbol, tf, err)
				results[symbol+" "+tf] = 0
				continue
			}
			results[symbol+" "+tf] = s.Process(symbol, tf, bars)
		}
	}
	return results
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		results := s.RunAllNow()
		return notifier.FormatScanSummary(results)
	case "/status":
		return notifier.FormatStatus(s.Symbols, s.Timeframes, s.Seen.Len(), s.ScoreMin)
	default:
		return "Available commands:\n• /scan — run detection now\n• /status — show bot status"
	}
}
