package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 50, cfg.Pagination.DefaultLimit)
		assert.Equal(t, 100, cfg.Render.PaginateThreshold)
		assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
api:
  base_url: https://mesh.example.com/api/v1
  timeout_seconds: 30
pagination:
  default_limit: 25
render:
  paginate_threshold: 200
storage:
  backend: sqlite
tui:
  theme: gruvbox
`)

		cfg, err := Load(path, t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "https://mesh.example.com/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 30, cfg.API.TimeoutSeconds)
		assert.Equal(t, 25, cfg.Pagination.DefaultLimit)
		assert.Equal(t, 200, cfg.Render.PaginateThreshold)
		assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
		assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := writeConfig(t, "pagination:\n  default_limit: 100\n")

		cfg, err := Load(path, t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 100, cfg.Pagination.DefaultLimit)
		assert.Equal(t, 2, cfg.Render.ItemHeight)
		assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := writeConfig(t, "pagination: [not a map\n")

		_, err := Load(path, t.TempDir())
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.DataDir = "/tmp/meshmemory"
		return &cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/just/a/path" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }},
		{"limit outside allowed set", func(c *Config) { c.Pagination.DefaultLimit = 33 }},
		{"zero paginate threshold", func(c *Config) { c.Render.PaginateThreshold = 0 }},
		{"zero item height", func(c *Config) { c.Render.ItemHeight = 0 }},
		{"negative overscan", func(c *Config) { c.Render.Overscan = -1 }},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "solarized" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
