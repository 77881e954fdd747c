package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads the tasks command configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tasks/tasks.toml or OS-specific config dir)
// 3. Project config file (tasks.toml or .tasks.toml in the current directory)
// 4. Environment variables
// 5. CLI flags, parsed from args into fs
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return load(fs, args, bindStoreFlags)
}

// LoadActivity is Load for the activity command, which has its own flags.
func LoadActivity(fs *flag.FlagSet, args []string) (*Config, error) {
	return load(fs, args, bindActivityFlags)
}

func load(fs *flag.FlagSet, args []string, bind func(*Config, *flag.FlagSet)) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.ProjectRoot = wd

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(cfg.ProjectRoot); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if fs == nil {
		fs = flag.NewFlagSet("tasks", flag.ContinueOnError)
	}
	bind(cfg, fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	finalizeConfig(cfg)

	return cfg, nil
}

// loadConfigFile decodes TOML from path over cfg and records the file.
// Keys missing from the file leave cfg unchanged.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig expands and absolutizes paths.
func finalizeConfig(cfg *Config) {
	cfg.TaskFile = expandPath(cfg.TaskFile)
	if cfg.TaskFile != "" && !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.ProjectRoot, cfg.TaskFile)
	}
}
