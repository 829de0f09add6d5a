package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the process-level settings of an App instance. Everything that
// describes the data flow itself lives in the pipeline files.
type Config struct {
	ConfigPaths []string // hcl files or directories
	EnvFile     string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy with normalized values. An empty
// ConfigPaths is allowed and runs the built-in defaults.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	for _, p := range cfg.ConfigPaths {
		if strings.TrimSpace(p) == "" {
			return nil, errors.New("config path cannot be empty")
		}
	}
	return &cfg, nil
}
