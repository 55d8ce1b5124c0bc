// Package config provides configuration loading for the agrofinder
// client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the full client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Log     LogConfig     `koanf:"log"`
	Session SessionConfig `koanf:"session"`
}

// APIConfig locates the remote search service.
type APIConfig struct {
	// Server is the scheme://host[:port] of the service.
	Server string `koanf:"server"`
	// BasePath is the API prefix under Server. It may also be a full
	// URL, in which case Server is ignored.
	BasePath string `koanf:"base_path"`
	// Timeout applies to every remote call.
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig controls the rotated log file. The TUI never logs to the
// terminal; file output keeps rendering intact.
type LogConfig struct {
	File       string `koanf:"file"`
	Level      string `koanf:"level"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	Console    bool   `koanf:"console"`
}

// SessionConfig locates the persisted authentication flag.
type SessionConfig struct {
	Path string `koanf:"path"`
}

// BaseURL resolves the service root the API client talks to.
func (c APIConfig) BaseURL() string {
	base := c.BasePath
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return strings.TrimRight(base, "/")
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return strings.TrimRight(c.Server, "/") + strings.TrimRight(base, "/")
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.API.Server == "" && !strings.HasPrefix(c.API.BasePath, "http") {
		return fmt.Errorf("api.server is required")
	}
	if c.API.Server != "" {
		if _, err := url.Parse(c.API.Server); err != nil {
			return fmt.Errorf("api.server is not a valid URL: %w", err)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Dir returns the agrofinder config directory, ~/.config/agrofinder.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "agrofinder"), nil
}

// EnsureDir creates the config directory with owner-only permissions.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}
	return nil
}
