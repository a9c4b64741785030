// Package config loads the YAML configuration from ~/.glance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// MonitorURL is the base URL of the remote activity-monitor service.
	MonitorURL string `yaml:"monitor_url"`
	// RequestTimeoutSeconds bounds each monitor request.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	// CacheTTLSeconds is how long cacheable dashboard sources stay fresh.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// RecentSessionLimit caps the recent-sessions dashboard card.
	RecentSessionLimit int `yaml:"recent_session_limit"`
	// GoalTargets maps category names to daily target minutes.
	GoalTargets map[string]int `yaml:"goal_targets"`
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the cache time-to-live as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		MonitorURL:            "http://127.0.0.1:8710",
		RequestTimeoutSeconds: 10,
		CacheTTLSeconds:       30,
		RecentSessionLimit:    10,
		GoalTargets: map[string]int{
			"work":  240,
			"study": 60,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".glance", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
