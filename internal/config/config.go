package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from .env files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL            string        `mapstructure:"base_url"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	TokenScheme        string        `mapstructure:"token_scheme"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	OutputDir    string `mapstructure:"output_dir"`
	OutputFormat string `mapstructure:"output_format"`

	HistoryType            string        `mapstructure:"history_type"`
	HistoryPath            string        `mapstructure:"history_path"`
	HistoryTTLSeconds      int64         `mapstructure:"history_ttl_seconds"`
	HistoryCleanupSeconds  int64         `mapstructure:"history_cleanup_interval_seconds"`
	HistoryTTL             time.Duration `mapstructure:"-"`
	HistoryCleanupInterval time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`
}

// envFiles are loaded in order; variables already set are never overridden.
var envFiles = []string{".env", "configs/.env"}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()

	v.SetDefault("app_name", "spotrm-api-examples")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://www.spotrm.com/api/v1")
	v.SetDefault("token_scheme", "bearer")
	v.SetDefault("http_timeout_seconds", 0) // transport default
	v.SetDefault("output_dir", ".")
	v.SetDefault("output_format", "json")
	v.SetDefault("history_type", "none")
	v.SetDefault("history_path", "./data/history.db")
	v.SetDefault("history_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("history_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("publishers_file", "")

	// Credentials may come from either pair of names; TEST_* wins.
	if err := v.BindEnv("username", "TEST_USERNAME", "USER"); err != nil {
		return nil, fmt.Errorf("bind username: %w", err)
	}
	if err := v.BindEnv("password", "TEST_PASSWORD", "PASSWORD"); err != nil {
		return nil, fmt.Errorf("bind password: %w", err)
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.TokenScheme = strings.ToLower(strings.TrimSpace(c.TokenScheme))
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	c.HistoryType = strings.ToLower(strings.TrimSpace(c.HistoryType))
	c.PublishersFile = strings.TrimSpace(c.PublishersFile)

	if c.BaseURL == "" {
		return errors.New("invalid base_url (must not be empty)")
	}
	if !c.HasCredentials() {
		return errors.New("missing credentials: set TEST_USERNAME and TEST_PASSWORD (or USER and PASSWORD)")
	}
	switch c.TokenScheme {
	case "bearer", "basic":
	default:
		return fmt.Errorf("invalid token_scheme %q (expected bearer or basic)", c.TokenScheme)
	}
	switch c.OutputFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output_format %q (expected json or yaml)", c.OutputFormat)
	}

	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be zero or positive seconds)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	if c.HistoryTTLSeconds <= 0 {
		return fmt.Errorf("invalid history_ttl_seconds (must be positive seconds)")
	}
	if c.HistoryCleanupSeconds <= 0 {
		return fmt.Errorf("invalid history_cleanup_interval_seconds (must be positive seconds)")
	}
	c.HistoryTTL = time.Duration(c.HistoryTTLSeconds) * time.Second
	c.HistoryCleanupInterval = time.Duration(c.HistoryCleanupSeconds) * time.Second
	return nil
}

// HasCredentials reports whether both username and password are set.
func (c *Config) HasCredentials() bool {
	return strings.TrimSpace(c.Username) != "" && c.Password != ""
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "****"
	}
	return c
}
