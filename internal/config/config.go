// Package config loads the app configuration from an optional YAML file
// under ~/.callscope, with every field overridable by a CLI flag.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved runtime configuration.
type Config struct {
	// CallLogPath is the call log export file the provider reads.
	CallLogPath string `yaml:"call_log_path"`
	// DatabasePath is the SQLite database holding contacts and settings.
	DatabasePath string `yaml:"database_path"`
	// CacheDir holds reconciliation snapshot files.
	CacheDir string `yaml:"cache_dir"`
	// LogFile receives structured logs; empty means no log file.
	LogFile string `yaml:"log_file"`
	// Timezone for display, e.g. "UTC" or "America/New_York".
	Timezone string `yaml:"timezone"`
	// PollInterval between call log polls in watch mode.
	PollInterval time.Duration `yaml:"poll_interval"`
	// FetchLimit caps entries loaded per poll.
	FetchLimit int `yaml:"fetch_limit"`
	// DialerCommand is the argv template used to place calls; {number}
	// is replaced with the dialed number. Empty means the adb default.
	DialerCommand []string `yaml:"dialer_command"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return ExpandPath("~/.callscope/config.yaml")
}

// Load reads the config file at path. A missing file is not an error:
// defaults apply. An unreadable or malformed file is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// Validate fills zero fields with defaults and expands ~ in paths.
func (c *Config) Validate() {
	if c.CallLogPath == "" {
		c.CallLogPath = "~/.callscope/calllog.json"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "~/.callscope/callscope.db"
	}
	if c.CacheDir == "" {
		c.CacheDir = "~/.callscope/cache"
	}
	if c.LogFile == "" {
		c.LogFile = "~/.callscope/logs/app.log"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = 500
	}

	c.CallLogPath = ExpandPath(c.CallLogPath)
	c.DatabasePath = ExpandPath(c.DatabasePath)
	c.CacheDir = ExpandPath(c.CacheDir)
	c.LogFile = ExpandPath(c.LogFile)
}

// ExpandPath resolves a leading ~/ against the home directory and makes
// the path absolute.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
