package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "s3cret")

	cfg, err := Load(writeConfig(t, `
listen_addr: ":7000"
metrics_addr: ""
log_level: debug
journal_path: /tmp/journal.db
auth:
  jwt_secret: ${TEST_JWT_SECRET}
  token_ttl: 90m
  required: true
rate_limit:
  rps: 12.5
`))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.Required)
	assert.Equal(t, 12.5, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst, "burst keeps its default")
}

func TestLoadKeepsDefaults(t *testing.T) {
	t.Setenv("EXPENSES_METRICS_ADDR", ":9191")

	cfg, err := Load(writeConfig(t, "listen_addr: \":7000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.MetricsAddr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.Required)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "listen_addr: [unclosed\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ListenAddr:  ":8080",
		MetricsAddr: ":9090",
		LogLevel:    "info",
		Auth:        AuthConfig{TokenTTL: time.Hour},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no listen addr", func(c *Config) { c.ListenAddr = "" }, "listen_addr is required"},
		{"shared addr", func(c *Config) { c.MetricsAddr = c.ListenAddr }, "metrics_addr must differ"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"auth without secret", func(c *Config) { c.Auth.Required = true }, "auth.jwt_secret"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "auth.token_ttl"},
		{"negative rps", func(c *Config) { c.RateLimit.RPS = -1 }, "rate_limit.rps"},
		{"rps without burst", func(c *Config) { c.RateLimit.RPS = 5 }, "rate_limit.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
