package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port '8080', got %q", cfg.Port)
	}
	if cfg.ContextMaxTurns != DefaultContextMaxTurns {
		t.Errorf("expected default context turns %d, got %d", DefaultContextMaxTurns, cfg.ContextMaxTurns)
	}
	if cfg.LogRetention != 720*time.Hour {
		t.Errorf("expected default retention 720h, got %v", cfg.LogRetention)
	}
	if cfg.ModelPath != "./models/model.json.zst" {
		t.Errorf("unexpected default model path %q", cfg.ModelPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CONTEXT_MAX_TURNS", "5")
	t.Setenv("SESSION_RATE_BURST", "3.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("expected port '9000', got %q", cfg.Port)
	}
	if cfg.ContextMaxTurns != 5 {
		t.Errorf("expected context turns 5, got %d", cfg.ContextMaxTurns)
	}
	if cfg.SessionRateBurst != 3.5 {
		t.Errorf("expected burst 3.5, got %v", cfg.SessionRateBurst)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"zero context turns", func(c *Config) { c.ContextMaxTurns = 0 }},
		{"negative refill", func(c *Config) { c.SessionRateRefill = -1 }},
		{"empty model path", func(c *Config) { c.ModelPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMetricsAuthEnabled(t *testing.T) {
	cfg := &Config{MetricsPassword: ""}
	if cfg.MetricsAuthEnabled() {
		t.Error("auth should be disabled without password")
	}
	cfg.MetricsPassword = "secret"
	if !cfg.MetricsAuthEnabled() {
		t.Error("auth should be enabled with password")
	}
}
