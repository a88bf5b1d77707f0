// Package config provides application configuration management.
// Settings are read from environment variables (with .env support) and the
// dialogue-engine tuning values are exposed as named constants in tuning.go.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data
	DataDir      string // SQLite chat-log database directory
	KnowledgeDir string // JSON knowledge base + intent catalog directory
	ModelPath    string // trained classifier artifact
	LogRetention time.Duration

	// Dialogue engine
	ContextMaxTurns int

	// Rate limiting (token bucket per session)
	SessionRateBurst  float64
	SessionRateRefill float64 // tokens per second
	SessionIdleTTL    time.Duration

	// Observability
	SentryDSN           string
	BetterstackToken    string
	BetterstackEndpoint string
	MetricsUsername     string
	MetricsPassword     string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then falls back to process env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir:      getEnv("DATA_DIR", "./data"),
		KnowledgeDir: getEnv("KNOWLEDGE_DIR", "./data"),
		ModelPath:    getEnv("MODEL_PATH", "./models/model.json.zst"),
		LogRetention: getDurationEnv("LOG_RETENTION", 720*time.Hour), // 30 days

		ContextMaxTurns: getIntEnv("CONTEXT_MAX_TURNS", DefaultContextMaxTurns),

		SessionRateBurst:  getFloatEnv("SESSION_RATE_BURST", 10.0),
		SessionRateRefill: getFloatEnv("SESSION_RATE_REFILL_PER_SEC", 0.5),
		SessionIdleTTL:    getDurationEnv("SESSION_IDLE_TTL", 30*time.Minute),

		SentryDSN:           getEnv("SENTRY_DSN", ""),
		BetterstackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterstackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),
		MetricsUsername:     getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword:     getEnv("METRICS_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.KnowledgeDir == "" {
		errs = append(errs, errors.New("KNOWLEDGE_DIR is required"))
	}
	if c.ModelPath == "" {
		errs = append(errs, errors.New("MODEL_PATH is required"))
	}
	if c.ContextMaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("CONTEXT_MAX_TURNS must be positive, got %d", c.ContextMaxTurns))
	}
	if c.SessionRateBurst <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_RATE_BURST must be positive, got %v", c.SessionRateBurst))
	}
	if c.SessionRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_RATE_REFILL_PER_SEC must be positive, got %v", c.SessionRateRefill))
	}
	if c.LogRetention <= 0 {
		errs = append(errs, fmt.Errorf("LOG_RETENTION must be positive, got %v", c.LogRetention))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the chat-log database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "chat_logs.db")
}

// MetricsAuthEnabled reports whether /metrics requires basic auth.
func (c *Config) MetricsAuthEnabled() bool {
	return c.MetricsPassword != ""
}
