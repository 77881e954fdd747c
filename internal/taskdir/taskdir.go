// Package taskdir provides file names and path helpers for the task store.
package taskdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultTaskFile is the default store file name.
	DefaultTaskFile = "tasks.json"

	// DefaultBackupSuffix replaces the store file extension when a damaged
	// store is copied aside.
	DefaultBackupSuffix = ".bak"

	// DefaultConfigFile is the config file name, both per user and per project.
	DefaultConfigFile = "tasks.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tasks.toml"

	// UserDir is the per-user state directory under the home directory.
	UserDir = ".tasks"
)

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved. It falls back to "." when the location is unknown.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// DefaultTaskPath returns the store file beside the running binary.
func DefaultTaskPath() string {
	return filepath.Join(ExecutableDir(), DefaultTaskFile)
}

// BackupPath returns path with its extension replaced by suffix.
// A path without an extension gets the suffix appended, and a leading dot
// in the base name is not treated as an extension.
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base || ext == "." {
		return path + suffix
	}
	return strings.TrimSuffix(path, ext) + suffix
}

// UserConfigPath returns ~/.tasks/tasks.toml, or "" if there is no home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, UserDir, DefaultConfigFile)
}
