package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"BlockSentinel/internal/detector"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Market struct {
		Symbols    []string `yaml:"symbols"`
		Timeframes []string `yaml:"timeframes"`
		History    int      `yaml:"history_candles"`
	} `yaml:"market"`
	Live struct {
		Websocket    bool `yaml:"websocket"`
		PollInterval int  `yaml:"poll_interval_sec"`
		BufferSize   int  `yaml:"buffer_candles"`
	} `yaml:"live"`
	Notify struct {
		ScoreMin float64 `yaml:"score_min"`
	} `yaml:"notify"`
	State struct {
		File string `yaml:"file"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Detection Detection `yaml:"detection"`
	Proxy     string    `yaml:"proxy"`
}

// Detection mirrors detector.Params with optional fields. Pointers
// distinguish "absent, use the default" from a deliberately configured zero,
// so setting e.g. touches_required: 0 is honored rather than replaced.
type Detection struct {
	ATRPeriod       *int     `yaml:"atr_period"`
	ATRMult         *float64 `yaml:"atr_mult"`
	BodyMinRatio    *float64 `yaml:"body_min_ratio"`
	WickMaxRatio    *float64 `yaml:"wick_max_ratio"`
	Lookahead       *int     `yaml:"lookahead"`
	MinDirCandles   *int     `yaml:"min_dir_candles"`
	MinNetMove      *float64 `yaml:"min_net_move"`
	TouchesRequired *int     `yaml:"touches_required"`
	ExpiryBars      *int     `yaml:"expiry_bars"`
	MinVolumeSpike  *float64 `yaml:"min_volume_spike"`
	SweepCheckBars  *int     `yaml:"liquidity_sweep_check_bars"`
	SweepWickRatio  *float64 `yaml:"liquidity_sweep_wick_ratio"`
	MergeThreshold  *float64 `yaml:"zone_merge_threshold"`
	MaxTouches      *int     `yaml:"max_touches"`
	Weights         *struct {
		BodySize *float64 `yaml:"body_size"`
		Impulse  *float64 `yaml:"impulse"`
		Touches  *float64 `yaml:"touches"`
		Volume   *float64 `yaml:"volume"`
		Sweep    *float64 `yaml:"sweep"`
	} `yaml:"score_weights"`
}

// Params resolves the detection section into a concrete parameter set,
// applying reference defaults only where a field is absent.
func (d Detection) Params() detector.Params {
	p := detector.DefaultParams()
	setInt(&p.ATRPeriod, d.ATRPeriod)
	setFloat(&p.ATRMult, d.ATRMult)
	setFloat(&p.BodyMinRatio, d.BodyMinRatio)
	setFloat(&p.WickMaxRatio, d.WickMaxRatio)
	setInt(&p.Lookahead, d.Lookahead)
	setInt(&p.MinDirCandles, d.MinDirCandles)
	setFloat(&p.MinNetMove, d.MinNetMove)
	setInt(&p.TouchesRequired, d.TouchesRequired)
	setInt(&p.ExpiryBars, d.ExpiryBars)
	setFloat(&p.MinVolumeSpike, d.MinVolumeSpike)
	setInt(&p.SweepCheckBars, d.SweepCheckBars)
	setFloat(&p.SweepWickRatio, d.SweepWickRatio)
	setFloat(&p.MergeThreshold, d.MergeThreshold)
	setInt(&p.MaxTouches, d.MaxTouches)
	if d.Weights != nil {
		setFloat(&p.Weights.BodySize, d.Weights.BodySize)
		setFloat(&p.Weights.Impulse, d.Weights.Impulse)
		setFloat(&p.Weights.Touches, d.Weights.Touches)
		setFloat(&p.Weights.Volume, d.Weights.Volume)
		setFloat(&p.Weights.Sweep, d.Weights.Sweep)
	}
	return p
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides and fills defaults for the non-detection sections.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Market.Symbols = splitList(v)
	}
	if v := os.Getenv("TIMEFRAMES"); v != "" {
		cfg.Market.Timeframes = splitList(v)
	}
	if v := os.Getenv("NOTIFY_SCORE_MIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Notify.ScoreMin = f
		}
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.State.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Market.Symbols) == 0 {
		cfg.Market.Symbols = []string{"BTC/USDT", "ETH/USDT"}
	}
	if len(cfg.Market.Timeframes) == 0 {
		cfg.Market.Timeframes = []string{"15m", "30m"}
	}
	if cfg.Market.History == 0 {
		cfg.Market.History = 200
	}
	if cfg.Live.PollInterval == 0 {
		cfg.Live.PollInterval = 30
	}
	if cfg.Live.BufferSize == 0 {
		cfg.Live.BufferSize = 200
	}
	if cfg.Notify.ScoreMin == 0 {
		cfg.Notify.ScoreMin = 0.5
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/seen_zones.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and that the detection
// parameters are coherent. A weight sum away from 1.0 is fatal here so a
// misconfiguration never reaches a scoring call.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Notify.ScoreMin < 0 || c.Notify.ScoreMin > 1 {
		return fmt.Errorf("notify.score_min must be in [0,1], got %g", c.Notify.ScoreMin)
	}
	if err := c.Detection.Params().Validate(); err != nil {
		return fmt.Errorf("detection: %w", err)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
