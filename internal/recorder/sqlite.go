package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists detection history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS zones (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			timeframe    TEXT NOT NULL,
			origin_index INTEGER NOT NULL,
			direction    TEXT NOT NULL,
			zone_low     REAL NOT NULL,
			zone_high    REAL NOT NULL,
			score        REAL NOT NULL,
			touches      INTEGER NOT NULL,
			has_sweep    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_zones_ts ON zones(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_zones_pair ON zones(symbol, timeframe)`,

		`CREATE TABLE IF NOT EXISTS scans (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			timeframe   TEXT NOT NULL,
			candles     INTEGER NOT NULL,
			zones_raw   INTEGER NOT NULL,
			zones_kept  INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordZone(evt *ZoneEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hasSweep := 0
	if evt.Zone.HasSweep {
		hasSweep = 1
	}
	_, err := r.db.Exec(`INSERT INTO zones
		(id, timestamp, symbol, timeframe, origin_index, direction,
		 zone_low, zone_high, score, touches, has_sweep)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), evt.Symbol, evt.Timeframe,
		evt.Zone.OriginIndex, string(evt.Zone.Direction),
		evt.Zone.Low, evt.Zone.High, evt.Zone.Score, evt.Zone.Touches, hasSweep,
	)
	return err
}

func (r *SQLiteRecorder) RecordScan(evt *ScanEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scans
		(timestamp, symbol, timeframe, candles, zones_raw, zones_kept, duration_ms)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Timeframe,
		evt.Candles, evt.ZonesRaw, evt.ZonesKept, evt.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
