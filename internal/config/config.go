package config

import (
	"time"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// Config represents the complete stencil configuration.
// It can be loaded from .stencil/config.yml with environment variable overrides.
type Config struct {
	Extraction extraction.Options `yaml:"extraction" mapstructure:"extraction"`
	Paths      PathsConfig        `yaml:"paths" mapstructure:"paths"`
	Watch      WatchConfig        `yaml:"watch" mapstructure:"watch"`
	Cache      CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Output     OutputConfig       `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files and directories are skipped. Extraction
// and folder trees keep separate lists; node_modules and .git never appear in
// a tree.
type PathsConfig struct {
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`           // glob patterns skipped by extraction
	TreeIgnore []string `yaml:"tree_ignore" mapstructure:"tree_ignore"` // glob patterns skipped by folder trees
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-extracting
}

// CacheConfig configures the in-memory extraction result cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Size    int  `yaml:"size" mapstructure:"size"` // max cached results
}

// OutputConfig configures where results go.
type OutputConfig struct {
	Copy bool `yaml:"copy" mapstructure:"copy"` // copy results to the clipboard by default
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Extraction: extraction.DefaultOptions(),
		Paths: PathsConfig{
			Ignore: []string{
				"node_modules/**",
				".git/**",
				"vendor/**",
				"dist/**",
				"build/**",
				"__pycache__/**",
				".venv/**",
				"**/*.d.ts",
			},
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    1024,
		},
	}
}

// Debounce returns the watch debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
