package config

import (
	"time"

	"github.com/nibzard/tasks-go/internal/logging"
)

// Default values.
const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultActivityAPIURL  = "https://api.github.com"
	DefaultActivityLimit   = 10
	DefaultActivityTimeout = 10 // seconds
)

// Config holds the full configuration for the tasks and activity commands.
type Config struct {
	// Store
	TaskFile     string `toml:"task_file"`
	BackupSuffix string `toml:"backup_suffix"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Event feed
	Activity ActivityConfig `toml:"activity"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`

	// Files lists the config files that were read, lowest priority first.
	Files []string `toml:"-"`
}

// ActivityConfig configures the event feed client.
type ActivityConfig struct {
	APIURL         string `toml:"api_url"`
	Limit          int    `toml:"limit"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout, falling back to the default for
// non-positive values.
func (a ActivityConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return DefaultActivityTimeout * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// LoggingOptions returns the console logger options for this config.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	if c.LogLevel != "" {
		opts.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		opts.Format = c.LogFormat
	}
	opts.Timestamps = c.LogTimestamps
	opts.Caller = c.LogCaller
	return opts
}
