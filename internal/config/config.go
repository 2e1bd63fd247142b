// Package config loads rpsx settings from an optional YAML file, an optional
// .env file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/rpsx/internal/game"
)

// ErrNoRoster is returned by LoadRoster when no roster file is configured.
var ErrNoRoster = errors.New("no roster file configured")

// Config holds application configuration.
type Config struct {
	Addr     string `yaml:"addr"`      // TCP host address
	HTTPAddr string `yaml:"http_addr"` // web server address
	Rounds   int    `yaml:"rounds"`    // default match length
	Workers  int    `yaml:"workers"`   // arena parallelism
	Roster   string `yaml:"roster"`    // path to a roster YAML file
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     ":9000",
		HTTPAddr: ":8080",
		Rounds:   game.DefaultRounds,
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load builds a Config. path may be empty; a missing .env is ignored.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	cfg.Addr = envOrDefault("RPSX_ADDR", cfg.Addr)
	cfg.HTTPAddr = envOrDefault("RPSX_HTTP_ADDR", cfg.HTTPAddr)
	cfg.Roster = envOrDefault("RPSX_ROSTER", cfg.Roster)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.Rounds, err = envIntOrDefault("RPSX_ROUNDS", cfg.Rounds); err != nil {
		return nil, err
	}
	if cfg.Workers, err = envIntOrDefault("RPSX_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// LoadRoster reads the configured roster file.
func (c *Config) LoadRoster() ([]game.MatchSpec, error) {
	if c.Roster == "" {
		return nil, ErrNoRoster
	}
	specs, err := game.LoadRoster(c.Roster)
	if err != nil {
		return nil, fmt.Errorf("load roster %s: %w", c.Roster, err)
	}
	return specs, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
