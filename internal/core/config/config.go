// Package config handles configuration loading and validation for
// meshmemory. Values that change behavior (thresholds, limits, storage
// backend) are read once at process start and never re-read at runtime.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pranavsinghpatil/meshmemory/internal/core/styles"
	"github.com/pranavsinghpatil/meshmemory/internal/paging"
)

// Snapshot storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Pagination PaginationConfig `yaml:"pagination"`
	Render     RenderConfig     `yaml:"render"`
	Storage    StorageConfig    `yaml:"storage"`
	TUI        TUIConfig        `yaml:"tui"`
	DataDir    string           `yaml:"-"` // set by caller, not from config file
}

// APIConfig points the client at a MeshMemory backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	SuggestLimit   int    `yaml:"suggest_limit"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// PaginationConfig controls paged fetching.
type PaginationConfig struct {
	// DefaultLimit is the page size used when ui-prefs carry none.
	// Must be one of the allowed page sizes.
	DefaultLimit int `yaml:"default_limit"`
}

// RenderConfig controls the render-mode selector and the windowed renderer.
type RenderConfig struct {
	// PaginateThreshold is the item count past which a transcript view
	// auto-switches from full to paginated display.
	PaginateThreshold int `yaml:"paginate_threshold"`
	// ItemHeight is the uniform per-item height, in rows, assumed by the
	// windowed renderer.
	ItemHeight int `yaml:"item_height"`
	// Overscan is the number of extra items rendered on each side of the
	// visible window.
	Overscan int `yaml:"overscan"`
}

// StorageConfig selects the snapshot backend for persisted state.
type StorageConfig struct {
	Backend string `yaml:"backend"` // json or sqlite
}

// TUIConfig holds terminal UI options.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 10,
			SuggestLimit:   8,
		},
		Pagination: PaginationConfig{
			DefaultLimit: paging.DefaultLimit,
		},
		Render: RenderConfig{
			PaginateThreshold: 100,
			ItemHeight:        2,
			Overscan:          3,
		},
		Storage: StorageConfig{
			Backend: BackendJSON,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = defaults.API.TimeoutSeconds
	}
	if c.API.SuggestLimit == 0 {
		c.API.SuggestLimit = defaults.API.SuggestLimit
	}
	if c.Pagination.DefaultLimit == 0 {
		c.Pagination.DefaultLimit = defaults.Pagination.DefaultLimit
	}
	if c.Render.PaginateThreshold == 0 {
		c.Render.PaginateThreshold = defaults.Render.PaginateThreshold
	}
	if c.Render.ItemHeight == 0 {
		c.Render.ItemHeight = defaults.Render.ItemHeight
	}
	if c.Render.Overscan == 0 {
		c.Render.Overscan = defaults.Render.Overscan
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be at least 1")
	}

	if !allowedLimit(c.Pagination.DefaultLimit) {
		return fmt.Errorf("pagination.default_limit %d must be one of %v", c.Pagination.DefaultLimit, paging.AllowedLimits)
	}

	if c.Render.PaginateThreshold < 1 {
		return fmt.Errorf("render.paginate_threshold must be at least 1")
	}
	if c.Render.ItemHeight < 1 {
		return fmt.Errorf("render.item_height must be at least 1")
	}
	if c.Render.Overscan < 0 {
		return fmt.Errorf("render.overscan cannot be negative")
	}

	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return fmt.Errorf("storage.backend %q must be %q or %q", c.Storage.Backend, BackendJSON, BackendSQLite)
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (one of %v)", c.TUI.Theme, styles.ThemeNames())
	}

	return nil
}

func allowedLimit(limit int) bool {
	for _, l := range paging.AllowedLimits {
		if limit == l {
			return true
		}
	}
	return false
}
