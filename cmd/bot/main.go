package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"BlockSentinel/internal/collector"
	"BlockSentinel/internal/config"
	"BlockSentinel/internal/model"
	"BlockSentinel/internal/notifier"
	"BlockSentinel/internal/recorder"
	"BlockSentinel/internal/scheduler"
	"BlockSentinel/internal/state"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.Info("BlockSentinel starting...")

	// .env is optional; real deployments use environment variables directly.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config validation: %v", err)
	}
	params := cfg.Detection.Params()

	// Init fetcher and collector
	fetcher := collector.NewBinanceFetcher(cfg.Proxy)
	logger.Infof("data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Market.History)

	// Init seen-zone state
	seen, err := state.NewManager(cfg.State.File)
	if err != nil {
		logger.Fatalf("init state: %v", err)
	}
	if n := seen.Len(); n > 0 {
		logger.Infof("loaded %d seen zones from %s", n, cfg.State.File)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, params, tn, seen, rec,
		cfg.Market.Symbols, cfg.Market.Timeframes, cfg.Notify.ScoreMin, logger)
	if err := sched.RegisterAll(time.Duration(cfg.Live.PollInterval) * time.Second); err != nil {
		logger.Fatalf("register scan jobs: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional websocket mode: scan on every closed candle instead of
	// waiting for the next poll.
	if cfg.Live.Websocket {
		minCandles := params.ATRPeriod + params.Lookahead + 1
		watcher := collector.NewStreamWatcher(cfg.Market.Symbols, cfg.Market.Timeframes,
			cfg.Live.BufferSize, func(symbol, timeframe string, bars []model.OHLCV) {
				if len(bars) < minCandles {
					return
				}
				sched.Process(symbol, timeframe, bars)
			}, logger)
		go watcher.Run(ctx)
		logger.Info("websocket watcher started")
	}

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	logger.Info("telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, scanning all pairs now")
		go sched.RunAllNow()
	}

	logger.Info("BlockSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
	logger.Info("BlockSentinel stopped")
}
