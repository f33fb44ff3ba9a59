// Package config loads the server configuration from YAML with
// environment-variable defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// MetricsAddr serves /metrics. Empty disables the metrics listener.
	MetricsAddr string `yaml:"metrics_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// JournalPath is the SQLite file recording accepted writes.
	// Empty disables the journal and the History RPC.
	JournalPath string `yaml:"journal_path"`

	Auth AuthConfig `yaml:"auth"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	// Required puts the ExpenseService behind token authentication.
	Required bool `yaml:"required"`
}

// RateLimitConfig bounds the ExpenseService request rate.
// A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Default returns the configuration used when no file is given,
// taking overrides from EXPENSES_* environment variables.
func Default() Config {
	ttl, err := time.ParseDuration(getEnv("EXPENSES_TOKEN_TTL", "24h"))
	if err != nil {
		ttl = 24 * time.Hour
	}
	return Config{
		ListenAddr:  getEnv("EXPENSES_LISTEN_ADDR", ":8080"),
		MetricsAddr: getEnv("EXPENSES_METRICS_ADDR", ":9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		JournalPath: getEnv("EXPENSES_JOURNAL_PATH", "./data/journal.db"),
		Auth: AuthConfig{
			JWTSecret: os.Getenv("EXPENSES_JWT_SECRET"),
			TokenTTL:  ttl,
			Required:  getEnv("EXPENSES_AUTH_REQUIRED", "false") == "true",
		},
		RateLimit: RateLimitConfig{
			Burst: 20,
		},
	}
}

// Load reads path over Default(). ${VAR} references in the file are
// expanded from the environment before parsing.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	expanded := os.ExpandEnv(string(raw))
	expanded = strings.ReplaceAll(expanded, "\r\n", "\n")

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.MetricsAddr != "" && c.MetricsAddr == c.ListenAddr {
		return fmt.Errorf("metrics_addr must differ from listen_addr")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth.required=true")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1 when rate_limit.rps is set")
	}

	return nil
}
