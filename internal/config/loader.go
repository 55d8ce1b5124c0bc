package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables the loader reads.
const envPrefix = "AGROFINDER_"

// defaultsYAML is the base layer of the configuration. The API base
// path defaults to the relative /api prefix the service mounts its
// routes under.
const defaultsYAML = `
api:
  server: http://localhost:8000
  base_path: /api
  timeout: 60s
log:
  level: info
  max_size_mb: 10
  max_backups: 3
  console: false
session: {}
`

// Load builds the configuration from three layers, lowest precedence
// first: hardcoded defaults, the YAML config file, and AGROFINDER_*
// environment variables. A local .env file is honored before the env
// layer is read.
//
// Environment variables map to config keys by stripping the prefix and
// splitting on the first underscore:
//
//	AGROFINDER_API_SERVER    -> api.server
//	AGROFINDER_API_BASE_PATH -> api.base_path
//	AGROFINDER_LOG_LEVEL     -> log.level
//
// configPath selects the YAML file; empty means the default
// ~/.config/agrofinder/config.yaml. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaultsYAML)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, "config.yaml")
	}
	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// AGROFINDER_API_BASE_PATH -> api.base_path: section up to the
		// first underscore, field name keeps the rest.
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills the values that depend on the user's home
// directory and so cannot live in defaultsYAML.
func applyDefaults(cfg *Config) {
	dir, err := Dir()
	if err != nil {
		return
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dir, "agrofinder.log")
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = filepath.Join(dir, "session")
	}
}
