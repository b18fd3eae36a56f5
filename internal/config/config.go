// Package config manages the application configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Images   ImagesConfig   `toml:"images"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int  `toml:"port"`         // Listen port
	OpenBrowser bool `toml:"open_browser"` // Open the gallery page on startup
}

// DatabaseConfig contains persistence settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // SQLite file; empty = ~/.cardbinder/data.db
}

// CatalogConfig contains catalog input settings.
type CatalogConfig struct {
	Path  string `toml:"path"`  // Catalog JSON file
	Watch bool   `toml:"watch"` // Reload the catalog when the file changes
}

// ImagesConfig contains card image asset settings.
type ImagesConfig struct {
	Dir string `toml:"dir"` // Directory holding {number}.png assets
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8480,
			OpenBrowser: true,
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Catalog: CatalogConfig{
			Path:  "cards.json",
			Watch: false,
		},
		Images: ImagesConfig{
			Dir: "cards_images",
		},
	}
}

// DefaultDatabasePath returns the database location used when none is
// configured.
func DefaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cardbinder", "data.db"), nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".cardbinder")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config when no
// file exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path cannot be empty")
	}
	if c.Images.Dir == "" {
		return fmt.Errorf("images directory cannot be empty")
	}
	return nil
}
