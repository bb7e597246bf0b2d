// Package config loads the optional YAML config file and environment
// overrides. Scan behavior (keyword, window, interval, target) lives in
// the settings table instead; this file only covers host concerns.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds host-level application configuration.
type Config struct {
	DBPath  string        `yaml:"db_path"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds debug log settings.
type LoggingConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns a Config pointing at ~/.config/wifitrackr/.
func Default() *Config {
	dir := configDir()
	return &Config{
		DBPath: filepath.Join(dir, "wifitrackr.db"),
		Logging: LoggingConfig{
			Path:  filepath.Join(dir, "wifitrackr.log"),
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.config/wifitrackr/config.yaml.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads config from a YAML file (a missing file is fine) and applies
// environment overrides, which take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.loadFromEnv()
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("WT_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("WT_LOG_PATH"); v != "" {
		c.Logging.Path = v
	}
	if v := os.Getenv("WT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "wifitrackr")
}
