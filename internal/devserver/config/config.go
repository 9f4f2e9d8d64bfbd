// Package config handles configuration for the development backend,
// including defaults, an optional file overlay, and command-line flags.
package config

import (
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     secret per process, which invalidates sessions on restart.
//   - TokenTTL: lifetime of issued tokens.
//   - DemoAccount: optional "email:password" account created at startup.
//   - LogLevel, LogBackend: see logging.Options.
type Config struct {
	Addr        string
	SecretKey   string
	TokenTTL    time.Duration
	DemoAccount string
	LogLevel    string
	LogBackend  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:2022"
	c.SecretKey = ""
	c.TokenTTL = 24 * time.Hour
	c.DemoAccount = "demo@example.com:demo"
	c.LogLevel = "info"
	c.LogBackend = "zap"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
