package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "VAKWETOWEYA_"

// parseEnv overlays Config with VAKWETOWEYA_* variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.BaseURL, os.Getenv(envPrefix+"BASE_URL"))
	setString(&cfg.DBPath, os.Getenv(envPrefix+"DB_PATH"))
	setString(&cfg.LogLevel, os.Getenv(envPrefix+"LOG_LEVEL"))
	setString(&cfg.LogBackend, os.Getenv(envPrefix+"LOG_BACKEND"))
	setDuration(&cfg.SessionCheckInterval, envDuration("SESSION_CHECK_INTERVAL"))
	setDuration(&cfg.RequestTimeout, envDuration("REQUEST_TIMEOUT"))
}

func envDuration(name string) time.Duration {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", envPrefix, name, err))
	}
	return d
}
