package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DefinitionPaths []string // hcl files or directories
	LoadDefaults    bool     // register the default host and local buffers

	DenseCacheSize  int
	LogFormat       string
	LogLevel        string
	LogFile         string // rotated log file; empty logs to the output writer
	LogMaxSizeMB    int
	LogMaxAgeDays   int
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.DefinitionPaths) == 0 && !cfg.LoadDefaults {
		return nil, errors.New("at least one definition path is required unless default columns are loaded")
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.DenseCacheSize < 0 {
		return nil, fmt.Errorf("dense cache size cannot be negative, got %d", cfg.DenseCacheSize)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.LogMaxSizeMB <= 0 {
		cfg.LogMaxSizeMB = 100
	}
	if cfg.LogMaxAgeDays < 0 {
		return nil, fmt.Errorf("log max age cannot be negative, got %d", cfg.LogMaxAgeDays)
	}

	return &cfg, nil
}
