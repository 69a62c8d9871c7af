package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "BRL", cfg.Account.Currency)
	assert.Equal(t, 2000.0, cfg.Account.InitialPatrimony)
	assert.Equal(t, 100.0, cfg.Limits.DailyLossLimit)
	assert.Equal(t, 200.0, cfg.Limits.DailyGainTarget)
	assert.Equal(t, 10, cfg.Limits.ProjectionDays)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:   "missing currency",
			mutate: func(c *Config) { c.Account.Currency = "" },
			errMsg: "account.currency is required",
		},
		{
			name:   "zero loss limit",
			mutate: func(c *Config) { c.Limits.DailyLossLimit = 0 },
			errMsg: "limits.daily_loss_limit must be positive",
		},
		{
			name:   "negative gain target",
			mutate: func(c *Config) { c.Limits.DailyGainTarget = -1 },
			errMsg: "limits.daily_gain_target must be positive",
		},
		{
			name:   "projection too long",
			mutate: func(c *Config) { c.Limits.ProjectionDays = 11 },
			errMsg: "limits.projection_days must be between 1 and 10",
		},
		{
			name:   "unknown store",
			mutate: func(c *Config) { c.Store.Type = "s3" },
			errMsg: "store.type must be one of",
		},
		{
			name:   "sqlite without path",
			mutate: func(c *Config) { c.Store.Type = "sqlite"; c.Store.DBPath = "" },
			errMsg: "store.db_path required",
		},
		{
			name:   "redis without addr",
			mutate: func(c *Config) { c.Store.Type = "redis" },
			errMsg: "store.redis_addr required",
		},
		{
			name:   "postgres without dsn",
			mutate: func(c *Config) { c.Store.Type = "postgres" },
			errMsg: "store.dsn required",
		},
		{
			name:   "memory needs nothing",
			mutate: func(c *Config) { c.Store = StoreConfig{Type: "memory"} },
		},
		{
			name:   "unsupported locale",
			mutate: func(c *Config) { c.Locale = "fr-FR" },
			errMsg: "locale must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Limits.DailyLossLimit = 150
			cfg.Store = StoreConfig{Type: "sqlite", DBPath: "/tmp/j.sqlite"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account, loaded.Account)
			assert.Equal(t, cfg.Limits, loaded.Limits)
			assert.Equal(t, cfg.Store, loaded.Store)
			assert.Equal(t, cfg.Locale, loaded.Locale)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  daily_loss_limit: 250\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Limits.DailyLossLimit)
	assert.Equal(t, 200.0, cfg.Limits.DailyGainTarget)
	assert.Equal(t, "file", cfg.Store.Type)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("JOURNAL_STORE", "redis")
	t.Setenv("JOURNAL_REDIS_ADDR", "localhost:6380")
	t.Setenv("JOURNAL_REDIS_DB", "3")
	t.Setenv("JOURNAL_STORE_DSN", "postgres://u@h/db")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "redis", cfg.Store.Type)
	assert.Equal(t, "localhost:6380", cfg.Store.RedisAddr)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.Equal(t, "postgres://u@h/db", cfg.Store.DSN)
	assert.NoError(t, cfg.Validate())
}
