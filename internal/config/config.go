// Package config loads monitor settings from a YAML file with sensible
// defaults for a local ProxySQL admin interface.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory under $HOME holding the config file.
	GlobalConfigDir = ".config/proxysql-monitor"
	// GlobalConfigFile is the config file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"
)

// Database holds admin interface connection settings.
type Database struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	Socket   string        `mapstructure:"socket"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Thresholds holds the classification boundaries for display coloring.
type Thresholds struct {
	ConnectionsLow    int `mapstructure:"connections_low"`
	ConnectionsMedium int `mapstructure:"connections_medium"`
	ConnectionsHigh   int `mapstructure:"connections_high"`

	QPSLow    float64 `mapstructure:"qps_low"`
	QPSMedium float64 `mapstructure:"qps_medium"`
	QPSHigh   float64 `mapstructure:"qps_high"`

	HitsLow    float64 `mapstructure:"hits_low"`
	HitsMedium float64 `mapstructure:"hits_medium"`
	HitsHigh   float64 `mapstructure:"hits_high"`
}

// Config is the full monitor configuration.
type Config struct {
	Database   Database   `mapstructure:"database"`
	Thresholds Thresholds `mapstructure:"thresholds"`

	PollInterval   time.Duration `mapstructure:"poll_interval"`
	WindowSize     int           `mapstructure:"window_size"`
	PageSize       int           `mapstructure:"page_size"`
	ExcludedUsers  []string      `mapstructure:"excluded_users"`
	SlowQueryMinMS int           `mapstructure:"slow_query_min_ms"`

	LogFile  string `mapstructure:"log_file"`
	LogLines int    `mapstructure:"log_lines"`

	DebugLogFile string `mapstructure:"debug_log_file"`
}

// Default returns the configuration used when no file overrides anything.
func Default() *Config {
	return &Config{
		Database: Database{
			Host:    "127.0.0.1",
			Port:    6032,
			User:    "admin",
			Timeout: 5 * time.Second,
		},
		Thresholds: Thresholds{
			ConnectionsLow:    10,
			ConnectionsMedium: 50,
			ConnectionsHigh:   100,
			QPSLow:            1000,
			QPSMedium:         5000,
			QPSHigh:           10000,
			HitsLow:           1000,
			HitsMedium:        10000,
			HitsHigh:          100000,
		},
		PollInterval:   3 * time.Second,
		WindowSize:     300,
		PageSize:       40,
		ExcludedUsers:  []string{"monitor", "proxysql_admin"},
		SlowQueryMinMS: 1000,
		LogFile:        "/var/lib/proxysql/proxysql.log",
		LogLines:       100,
		DebugLogFile:   "proxysql-monitor.log",
	}
}

// Find locates the config file: the explicit path when given, otherwise the
// global config under $HOME. Returns "" when none exists.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads the config file at path and merges it over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the found config file, or returns defaults when none
// exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects configurations the monitor cannot run with.
func (c *Config) Validate() error {
	if c.Database.Host == "" && c.Database.Socket == "" {
		return fmt.Errorf("config: database host or socket is required")
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("config: poll_interval must be at least 1s, got %s", c.PollInterval)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: page_size must be positive, got %d", c.PageSize)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("config: window_size must be positive, got %d", c.WindowSize)
	}
	t := c.Thresholds
	if !(t.ConnectionsLow < t.ConnectionsMedium && t.ConnectionsMedium < t.ConnectionsHigh) {
		return fmt.Errorf("config: connection thresholds must be strictly increasing")
	}
	if !(t.QPSLow < t.QPSMedium && t.QPSMedium < t.QPSHigh) {
		return fmt.Errorf("config: qps thresholds must be strictly increasing")
	}
	if !(t.HitsLow < t.HitsMedium && t.HitsMedium < t.HitsHigh) {
		return fmt.Errorf("config: hits thresholds must be strictly increasing")
	}
	return nil
}
