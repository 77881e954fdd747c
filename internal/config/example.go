package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by TASKS_* environment variables or CLI flags

# Task file (relative paths resolve against the working directory;
# supports ~ expansion and %VAR% on Windows).
# Defaults to tasks.json beside the tasks binary.
# task_file = "~/.tasks/tasks.json"

# Extension given to the copy of a damaged task file
backup_suffix = ".bak"

# Console logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false

# Event feed used by the activity command
[activity]
api_url = "https://api.github.com"
limit = 10
timeout_seconds = 10
`
}
