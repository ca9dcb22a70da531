package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.HistoryLimit != 10 {
		t.Fatalf("history limit=%d", cfg.HistoryLimit)
	}
	if cfg.Timeout != 60*time.Second {
		t.Fatalf("timeout=%v", cfg.Timeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AFYAJAMII_BASE_URL", "http://localhost:8000")
	t.Setenv("AFYAJAMII_HISTORY_LIMIT", "25")
	t.Setenv("AFYAJAMII_TIMEOUT_SECONDS", "5")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("base url=%q", cfg.BaseURL)
	}
	if cfg.HistoryLimit != 25 {
		t.Fatalf("history limit=%d", cfg.HistoryLimit)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout=%v", cfg.Timeout)
	}
}

func TestBadEnvValuesKeepDefaults(t *testing.T) {
	t.Setenv("AFYAJAMII_HISTORY_LIMIT", "lots")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HistoryLimit != 10 {
		t.Fatalf("history limit=%d, want default", cfg.HistoryLimit)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for empty base url")
	}

	cfg = Default()
	cfg.HistoryLimit = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for non-positive history limit")
	}
}
