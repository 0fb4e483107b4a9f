// Package common provides shared utilities for the Robinhood MCP server.
package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the server.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Session     SessionConfig     `toml:"session"`
	Client      ClientConfig      `toml:"client"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CredentialsConfig holds Robinhood account credentials.
// Loaded once at startup and never mutated afterwards.
type CredentialsConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	MFACode  string `toml:"mfa_code"`
	AllowMFA bool   `toml:"allow_mfa"`
}

// SessionConfig holds session artifact persistence configuration.
// An empty path disables persistence; every tool call then pays a full login
// once the in-memory session expires.
type SessionConfig struct {
	Path string `toml:"path"`
}

// ClientConfig holds upstream API client configuration.
type ClientConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ClientConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			BaseURL:   "https://api.robinhood.com",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped; later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RH_USERNAME"); v != "" {
		config.Credentials.Username = v
	}
	if v := os.Getenv("RH_PASSWORD"); v != "" {
		config.Credentials.Password = v
	}
	if v := os.Getenv("RH_MFA_CODE"); v != "" {
		config.Credentials.MFACode = v
	}
	if v := os.Getenv("RH_ALLOW_MFA"); v != "" {
		config.Credentials.AllowMFA = isTruthy(v)
	}
	if v := os.Getenv("RH_SESSION_PATH"); v != "" {
		config.Session.Path = v
	}
	if v := os.Getenv("RH_BASE_URL"); v != "" {
		config.Client.BaseURL = v
	}
	if v := os.Getenv("RH_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
