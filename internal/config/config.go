// Package config loads atlas settings from the environment.
//
// Values come from ATLAS_* environment variables, optionally seeded from a
// .env file. Variables already present in the environment win over the
// file, and command-line flags win over both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no files are named.
const DefaultEnvFile = ".env"

// Config holds the settings shared by every atlas command.
type Config struct {
	// DB is the database path used when --db is not given.
	DB string `env:"ATLAS_DB"`

	// Format is the output format: "text" or "json".
	Format string `env:"ATLAS_FORMAT" envDefault:"text"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `env:"ATLAS_LOG_LEVEL" envDefault:"info"`
}

// Load reads the given .env files (DefaultEnvFile when none are named),
// then parses the environment. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks Format and LogLevel.
func (c Config) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("ATLAS_FORMAT: invalid format %q (want text or json)", c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("ATLAS_LOG_LEVEL: %w", err)
	}
	return level, nil
}
