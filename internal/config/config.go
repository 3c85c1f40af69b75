// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// History store drivers.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	Addr             string
	LogLevel         string
	TelemetryEnabled bool
	HistoryStore     string
	HistoryDir       string
	DatabaseURL      string
	ShutdownTimeout  time.Duration
}

// Load reads the configuration, applying defaults for unset variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getenv("CALCULATOR_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		HistoryStore:    getenv("HISTORY_STORE", StoreFile),
		HistoryDir:      getenv("HISTORY_DIR", "data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ShutdownTimeout: 5 * time.Second,
	}

	disabled, err := strconv.ParseBool(getenv("OTEL_SDK_DISABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing OTEL_SDK_DISABLED: %w", err)
	}
	cfg.TelemetryEnabled = !disabled

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		cfg.ShutdownTimeout, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	switch cfg.HistoryStore {
	case StoreMemory, StoreFile:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("HISTORY_STORE=%s requires DATABASE_URL", StorePostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown HISTORY_STORE %q", cfg.HistoryStore)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
