package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/flagx"
	"github.com/dmitrijs2005/vakwetoweya/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Empty fields
// leave the corresponding Config value alone.
type FileConfig struct {
	BaseURL              string         `json:"base_url" yaml:"base_url"`
	SessionCheckInterval timex.Duration `json:"session_check_interval" yaml:"session_check_interval"`
	DBPath               string         `json:"db_path" yaml:"db_path"`
	RequestTimeout       timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
	LogBackend           string         `json:"log_backend" yaml:"log_backend"`
}

// parseFile overlays Config with values loaded from the file named by
// flagx.ConfigPath. It panics on read or decode errors.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogBackend, fc.LogBackend)
	setDuration(&cfg.SessionCheckInterval, fc.SessionCheckInterval.Duration)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout.Duration)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
