package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete journal configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Limits  LimitsConfig  `json:"limits" yaml:"limits"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Locale  string        `json:"locale" yaml:"locale"` // "pt-BR" or "en-US"
}

// AccountConfig holds the patrimony the equity chart starts from
type AccountConfig struct {
	Currency         string  `json:"currency" yaml:"currency"`
	InitialPatrimony float64 `json:"initial_patrimony" yaml:"initial_patrimony"`
}

// LimitsConfig contains the daily risk plan
type LimitsConfig struct {
	DailyLossLimit  float64 `json:"daily_loss_limit" yaml:"daily_loss_limit"`
	DailyGainTarget float64 `json:"daily_gain_target" yaml:"daily_gain_target"`
	MonthlyTarget   float64 `json:"monthly_target" yaml:"monthly_target"`
	DefaultGain     float64 `json:"default_gain" yaml:"default_gain"`
	DefaultLoss     float64 `json:"default_loss" yaml:"default_loss"` // base value of the gain/loss multiplier table
	ProjectionDays  int     `json:"projection_days" yaml:"projection_days"`
}

// StoreConfig selects the blob store backend
type StoreConfig struct {
	Type          string `json:"type" yaml:"type"` // memory, file, sqlite, redis, postgres
	Dir           string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
	RedisPrefix   string `json:"redis_prefix,omitempty" yaml:"redis_prefix,omitempty"`
	DSN           string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // console|json
}

var storeTypes = []string{"memory", "file", "sqlite", "redis", "postgres"}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides store settings from the environment. The CLI loads .env
// before calling it.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("JOURNAL_STORE"); v != "" {
		c.Store.Type = v
	}
	if v := os.Getenv("JOURNAL_STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
	if v := os.Getenv("JOURNAL_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("JOURNAL_REDIS_PASSWORD"); v != "" {
		c.Store.RedisPassword = v
	}
	if v := os.Getenv("JOURNAL_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Store.RedisDB = n
		}
	}
	if v := os.Getenv("JOURNAL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Limits.DailyLossLimit <= 0 {
		return fmt.Errorf("limits.daily_loss_limit must be positive")
	}
	if c.Limits.DailyGainTarget <= 0 {
		return fmt.Errorf("limits.daily_gain_target must be positive")
	}
	if c.Limits.MonthlyTarget < 0 {
		return fmt.Errorf("limits.monthly_target must not be negative")
	}
	if c.Limits.DefaultLoss <= 0 {
		return fmt.Errorf("limits.default_loss must be positive")
	}
	if c.Limits.ProjectionDays < 1 || c.Limits.ProjectionDays > 10 {
		return fmt.Errorf("limits.projection_days must be between 1 and 10")
	}
	if !contains(storeTypes, c.Store.Type) {
		return fmt.Errorf("store.type must be one of %s", strings.Join(storeTypes, ", "))
	}
	switch c.Store.Type {
	case "file":
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir required for file store")
		}
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path required for sqlite store")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr required for redis store")
		}
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn required for postgres store")
		}
	}
	if c.Locale != "pt-BR" && c.Locale != "en-US" {
		return fmt.Errorf("locale must be 'pt-BR' or 'en-US'")
	}
	return nil
}

// Default returns the journal's out-of-the-box settings
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:         "BRL",
			InitialPatrimony: 2000,
		},
		Limits: LimitsConfig{
			DailyLossLimit:  100,
			DailyGainTarget: 200,
			MonthlyTarget:   2000,
			DefaultGain:     200,
			DefaultLoss:     100,
			ProjectionDays:  10,
		},
		Store: StoreConfig{
			Type:   "file",
			Dir:    "./journal-data",
			DBPath: "./journal.sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Locale: "pt-BR",
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
