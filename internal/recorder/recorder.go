package recorder

import (
	"time"

	"BlockSentinel/internal/model"
)

// ZoneEvent records one detected zone that passed the notification threshold.
type ZoneEvent struct {
	Symbol    string
	Timeframe string
	Zone      model.Zone
}

// ScanEvent records one completed scan run over a symbol/timeframe pair.
type ScanEvent struct {
	Symbol    string
	Timeframe string
	Candles   int
	ZonesRaw  int
	ZonesKept int
	Duration  time.Duration
}

// Recorder persists detection history for later analysis.
type Recorder interface {
	RecordZone(evt *ZoneEvent) error
	RecordScan(evt *ScanEvent) error
	Close() error
}
