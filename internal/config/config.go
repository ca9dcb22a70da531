// Package config loads client configuration from a YAML file in the user
// config directory, with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory under the user config dir holding the config
	// file and the persisted session.
	AppDir = "afyajamii"

	configFile = "config.yaml"
)

type Config struct {
	// BaseURL is the AfyaJamii backend base URL, without the /api/v1 prefix.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every API call.
	Timeout time.Duration `yaml:"timeout"`

	// HistoryLimit is the page size for history fetches.
	HistoryLimit int `yaml:"history_limit"`

	// LogMode selects logger output: "dev" or "prod".
	LogMode string `yaml:"log_mode"`
}

func Default() *Config {
	return &Config{
		BaseURL:      "https://afyajamii.onrender.com",
		Timeout:      60 * time.Second,
		HistoryLimit: 10,
		LogMode:      "prod",
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url is required")
	}
	if c.HistoryLimit <= 0 {
		return errors.New("history_limit must be positive")
	}
	return nil
}

// Load builds the effective config: defaults, then the user config file if it
// exists, then AFYAJAMII_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path(configFile)
	if err == nil {
		if data, readErr := os.ReadFile(path); readErr == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg.BaseURL = stringFromEnv("AFYAJAMII_BASE_URL", cfg.BaseURL)
	cfg.LogMode = stringFromEnv("AFYAJAMII_LOG_MODE", cfg.LogMode)
	cfg.HistoryLimit = intFromEnv("AFYAJAMII_HISTORY_LIMIT", cfg.HistoryLimit)
	if secs := intFromEnv("AFYAJAMII_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path resolves a file name inside the per-user app directory, creating the
// directory if needed.
func Path(name string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, AppDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func stringFromEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
