// Package config loads lib-fluent settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/log"
	"github.com/caarlos0/env/v6"
)

// Config is the process-wide configuration.
type Config struct {
	// SkipSignal is the preferred skip target: "auto", "go-test", "assertion"
	// or the name of a registered target.
	SkipSignal string `env:"FLUENT_SKIP_SIGNAL" envDefault:"auto"`
	// RecordLocation decorates collected failures with the caller file:line.
	RecordLocation bool `env:"FLUENT_RECORD_LOCATION" envDefault:"true"`
	// Color turns on ANSI colouring of diffs.
	Color bool `env:"FLUENT_COLOR" envDefault:"false"`
	// MaxValueLength truncates rendered values; 0 disables truncation.
	MaxValueLength int `env:"FLUENT_MAX_VALUE_LENGTH" envDefault:"200"`
	// LogLevel enables engine logging through zap when set.
	LogLevel string `env:"FLUENT_LOG_LEVEL"`
	// Environment selects the zap profile.
	Environment string `env:"FLUENT_ENV" envDefault:"local"`
}

// Default returns the configuration used when the environment is empty.
func Default() Config {
	return Config{
		SkipSignal:     string(failure.PreferAutoDetect),
		RecordLocation: true,
		MaxValueLength: 200,
		Environment:    "local",
	}
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse fluent environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values env cannot check on its own.
func (c Config) Validate() error {
	if c.MaxValueLength < 0 {
		return fmt.Errorf("FLUENT_MAX_VALUE_LENGTH must not be negative, got %d", c.MaxValueLength)
	}

	if strings.TrimSpace(c.LogLevel) != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("FLUENT_LOG_LEVEL: %w", err)
		}
	}

	return nil
}
