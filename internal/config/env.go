package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKS_* environment variables.
// Malformed numbers are ignored.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKS_FILE"); v != "" {
		cfg.TaskFile = v
	}
	if v := os.Getenv("TASKS_BACKUP_SUFFIX"); v != "" {
		cfg.BackupSuffix = v
	}

	// Logging configuration
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKS_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TASKS_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}

	// Event feed
	if v := os.Getenv("TASKS_ACTIVITY_API_URL"); v != "" {
		cfg.Activity.APIURL = v
	}
	if v := os.Getenv("TASKS_ACTIVITY_LIMIT"); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Activity.Limit = i
		}
	}
	if v := os.Getenv("TASKS_ACTIVITY_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Activity.TimeoutSeconds = i
		}
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
