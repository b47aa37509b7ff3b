// Package config handles persistent user configuration for fragsim.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-adjustable defaults. Validation bounds are not part of
// it: those live in fragment.Limits and follow RFC 791.
type Config struct {
	// Input defaults pre-filled when flags are omitted.
	DefaultPacketSize int    `yaml:"default_packet_size"`
	DefaultHeaderSize int    `yaml:"default_header_size"`
	DefaultMTUPath    string `yaml:"default_mtu_path"`

	// Export settings.
	ExportDirectory string `yaml:"export_directory"`
	AutoTimestamp   bool   `yaml:"auto_timestamp"`

	// TUI theme: "light" or "dark".
	Theme string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultPacketSize: 1500,
		DefaultHeaderSize: 20,
		DefaultMTUPath:    "1500,576,1500",
		ExportDirectory:   "exports",
		AutoTimestamp:     true,
		Theme:             "light",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fragsim.yaml"
	}
	return filepath.Join(dir, "fragsim", "config.yaml")
}

// Load reads the configuration from path. A missing file is not an error:
// the defaults are returned so first runs work without setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
