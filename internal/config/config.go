// Package config loads service configuration from an optional yaml
// file with environment overrides on top. The search API key has no
// default; the service refuses to start without one.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string    `yaml:"http_addr"`
	LogLevel string    `yaml:"log_level"`
	API      APIConfig `yaml:"api"`
}

type APIConfig struct {
	// Key authenticates against the search API (API-KEY header).
	Key string `yaml:"key"`
	// BaseURL overrides the public endpoint, mainly for tests.
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds bounds one search call. Zero keeps the client default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

func Default() Config {
	return Config{
		HTTPAddr: ":8081",
		LogLevel: "info",
	}
}

// Load reads path (if non-empty), layers env overrides on top of the
// defaults, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.HTTPAddr = envOr("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.API.Key = envOr("ZOOMEYE_API_KEY", cfg.API.Key)
	cfg.API.BaseURL = envOr("ZOOMEYE_API_URL", cfg.API.BaseURL)
	if v := os.Getenv("ZOOMEYE_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid ZOOMEYE_TIMEOUT_SECONDS %q", v)
		}
		cfg.API.TimeoutSeconds = n
	}

	if cfg.API.Key == "" {
		return Config{}, errors.New("search API key not configured (set ZOOMEYE_API_KEY or api.key)")
	}

	return cfg, nil
}

// Timeout converts the configured seconds into a duration; zero means
// "use the client default".
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
