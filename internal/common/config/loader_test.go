package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	path := writeConfig(t, `
app:
  name: portfolio-admin
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30000, cfg.API.Timeout)
	assert.Equal(t, DefaultLoginRoute, cfg.API.LoginRoute)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "portfolio:session:", cfg.Session.Redis.KeyPrefix)
}

func TestLoadFromFile_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://localhost:8080/api/")
	path := writeConfig(t, `
api:
  base_url: https://example.com/api
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
}

func TestLoadFromFile_UnsetPlaceholderFallsBackToDefault(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	path := writeConfig(t, `
api:
  base_url: ${PORTFOLIO_API_URL}
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
}

func TestLoadFromFile_Validation(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "bad base url",
			body:   "api:\n  base_url: ftp://nope\nsession:\n  backend: memory\n",
			errMsg: "api.base_url",
		},
		{
			name:   "redis without address",
			body:   "session:\n  backend: redis\n",
			errMsg: "session.redis.address",
		},
		{
			name:   "unknown backend",
			body:   "session:\n  backend: cookie\n",
			errMsg: "unknown session backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	cfg := Default()
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.NotEmpty(t, cfg.Session.File.Path)
	assert.NoError(t, validateConfig(cfg))
}
