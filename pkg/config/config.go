// Package config loads voteflow settings from the environment. Command-line
// flags override what is loaded here.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid is returned for values that parse but make no sense.
var ErrInvalid = errors.New("invalid config")

// Config holds the runtime settings.
type Config struct {
	Dir          string        `env:"VOTEFLOW_DIR"`
	Backend      string        `env:"VOTEFLOW_BACKEND"       envDefault:"file"`
	Catalog      string        `env:"VOTEFLOW_CATALOG"`
	LogLevel     string        `env:"VOTEFLOW_LOG_LEVEL"     envDefault:"info"`
	Effects      bool          `env:"VOTEFLOW_EFFECTS"       envDefault:"true"`
	AdvanceDelay time.Duration `env:"VOTEFLOW_ADVANCE_DELAY" envDefault:"800ms"`
	HubURL       string        `env:"VOTEFLOW_HUB_URL"       envDefault:"https://mintnetwork.net/"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a validated Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser can't.
func (c Config) Validate() error {
	if c.AdvanceDelay < 0 {
		return fmt.Errorf("%w: negative advance delay %s", ErrInvalid, c.AdvanceDelay)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
}
