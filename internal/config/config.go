// Package config resolves runtime settings from, in priority order:
// defaults, the user config file, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// DBPath is the sqlite file backing the key-value store.
	DBPath string `toml:"db_path"`
	// Theme applies when no theme preference has been persisted yet.
	Theme string `toml:"theme"`
	// LogFile receives structured debug logs; empty disables logging.
	LogFile string `toml:"log_file"`
}

func Default() Config {
	return Config{
		DBPath: defaultDBPath(),
		Theme:  "light",
	}
}

// Load layers the config file (if present) and environment overrides on top
// of the defaults.
func Load() (Config, error) {
	cfg := Default()

	path := configFilePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TASKNEST_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKNEST_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKNEST_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
}

func configFilePath() string {
	if v := strings.TrimSpace(os.Getenv("TASKNEST_CONFIG")); v != "" {
		return v
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "tasknest", "config.toml")
}

func defaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "tasknest.db"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "tasknest", "tasknest.db")
}

// EnsureDBDir creates the directory holding the database file.
func EnsureDBDir(cfg Config) error {
	dir := filepath.Dir(cfg.DBPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
