package config

import (
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
)

// Config holds runtime settings for the booking CLI.
//
// Fields:
//   - BaseURL: root URL of the booking backend.
//   - SessionCheckInterval: how often the stored token is polled.
//   - DBPath: SQLite file holding the session.
//   - RequestTimeout: per-request HTTP timeout, 0 for none.
//   - LogLevel, LogBackend: see logging.Options.
type Config struct {
	BaseURL              string
	SessionCheckInterval time.Duration
	DBPath               string
	RequestTimeout       time.Duration
	LogLevel             string
	LogBackend           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:2022"
	c.SessionCheckInterval = 3 * time.Second
	c.DBPath = "vakwetoweya.db"
	c.RequestTimeout = 0
	c.LogLevel = "warn"
	c.LogBackend = string(logging.BackendText)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present), the environment and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
