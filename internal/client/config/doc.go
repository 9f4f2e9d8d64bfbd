// Package config loads runtime configuration for the booking CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via -c / -config or
//     $VAKWETOWEYA_CONFIG. Files ending in .yaml or .yml are read as YAML,
//     anything else as JSON.
//  3. Environment variables, after loading a .env file from the working
//     directory when one exists (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend
//	-i int      session check interval (seconds)
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	VAKWETOWEYA_BASE_URL
//	VAKWETOWEYA_SESSION_CHECK_INTERVAL   duration, e.g. "5s"
//	VAKWETOWEYA_DB_PATH
//	VAKWETOWEYA_REQUEST_TIMEOUT          duration
//	VAKWETOWEYA_LOG_LEVEL
//	VAKWETOWEYA_LOG_BACKEND              text, json or zap
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:2022",
//	  "session_check_interval": "3s",
//	  "db_path": "vakwetoweya.db",
//	  "request_timeout": "10s",
//	  "log_level": "debug",
//	  "log_backend": "zap"
//	}
//
// Invalid values panic during LoadConfig; there is no sensible way to start
// with a half-read configuration.
package config
