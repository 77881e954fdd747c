package config

import "flag"

// bindStoreFlags defines the flags shared by every command.
func bindStoreFlags(cfg *Config, fs *flag.FlagSet) {
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to task file")
	fs.StringVar(&cfg.BackupSuffix, "backup-suffix", cfg.BackupSuffix, "Extension for backups of damaged task files")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")
}

// bindActivityFlags defines the flags of the activity command.
func bindActivityFlags(cfg *Config, fs *flag.FlagSet) {
	fs.StringVar(&cfg.Activity.APIURL, "api-url", cfg.Activity.APIURL, "GitHub API base URL")
	fs.IntVar(&cfg.Activity.Limit, "limit", cfg.Activity.Limit, "Maximum number of events to print")
	fs.IntVar(&cfg.Activity.TimeoutSeconds, "timeout", cfg.Activity.TimeoutSeconds, "Request timeout (seconds)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
}
