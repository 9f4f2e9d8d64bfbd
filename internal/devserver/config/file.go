package config

import (
	"os"

	"github.com/dmitrijs2005/vakwetoweya/internal/flagx"
	"github.com/dmitrijs2005/vakwetoweya/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape. YAML is a superset of JSON, so the same
// decoder reads both.
type FileConfig struct {
	Addr        string         `yaml:"addr"`
	SecretKey   string         `yaml:"secret_key"`
	TokenTTL    timex.Duration `yaml:"token_ttl"`
	DemoAccount *string        `yaml:"demo_account"`
	LogLevel    string         `yaml:"log_level"`
	LogBackend  string         `yaml:"log_backend"`
}

// parseFile overlays Config with the file named by -c / -config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(err)
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	// An explicit empty string disables the demo account.
	if fc.DemoAccount != nil {
		cfg.DemoAccount = *fc.DemoAccount
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogBackend != "" {
		cfg.LogBackend = fc.LogBackend
	}
}
