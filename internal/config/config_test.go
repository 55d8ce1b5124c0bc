package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.Server)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, 60*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File)
	assert.NotEmpty(t, cfg.Session.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  server: https://agrofinder.example.com
  timeout: 30s
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://agrofinder.example.com", cfg.API.Server)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "/api", cfg.API.BasePath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  server: https://file.example.com\n"), 0o600))

	t.Setenv("AGROFINDER_API_SERVER", "https://env.example.com")
	t.Setenv("AGROFINDER_API_BASE_PATH", "/v2/api")
	t.Setenv("AGROFINDER_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.Server)
	assert.Equal(t, "/v2/api", cfg.API.BasePath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_RejectsBadLevel(t *testing.T) {
	t.Setenv("AGROFINDER_LOG_LEVEL", "loud")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAPIConfig_BaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  APIConfig
		want string
	}{
		{
			name: "relative prefix joined to server",
			cfg:  APIConfig{Server: "http://localhost:8000", BasePath: "/api"},
			want: "http://localhost:8000/api",
		},
		{
			name: "missing leading slash",
			cfg:  APIConfig{Server: "http://localhost:8000/", BasePath: "api"},
			want: "http://localhost:8000/api",
		},
		{
			name: "full URL base path wins over server",
			cfg:  APIConfig{Server: "http://ignored", BasePath: "https://cdn.example.com/api/"},
			want: "https://cdn.example.com/api",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BaseURL())
		})
	}
}
