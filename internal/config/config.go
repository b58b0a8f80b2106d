// Package config loads the optional TOML config file. Every field has a
// default, so running without a config file is the normal case.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-tunable settings.
type Config struct {
	// DataDir overrides where the database and log live.
	DataDir string `toml:"data_dir"`
	// SessionMinutes is the study timer's starting length.
	SessionMinutes float64 `toml:"session_minutes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SessionMinutes: 30,
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME with a
// fallback to ~/.config.
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "ontrack", "config.toml"), nil
}

// Load reads the config file if present, applying defaults for anything
// unset. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.SessionMinutes <= 0 {
		cfg.SessionMinutes = Default().SessionMinutes
	}
	return cfg, nil
}
