package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from files and environment variables.
	// Priority: defaults → user config → project config → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	userDir    string
	configFile string
}

// LoaderOption configures a loader.
type LoaderOption func(*loader)

// WithConfigFile reads an explicit config file instead of .stencil/config.yml.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) {
		l.configFile = path
	}
}

// WithUserDir overrides the directory holding the user config (~/.stencil).
// An empty dir disables the user config.
func WithUserDir(dir string) LoaderOption {
	return func(l *loader) {
		l.userDir = dir
	}
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string, opts ...LoaderOption) Loader {
	l := &loader{rootDir: rootDir}
	if home, err := os.UserHomeDir(); err == nil {
		l.userDir = filepath.Join(home, ".stencil")
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (STENCIL_*)
// 2. Project config (.stencil/config.yml or .stencil/config.yaml) or explicit file
// 3. User config (~/.stencil/config.yml)
// 4. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Enable environment variable overrides
	v.SetEnvPrefix("STENCIL")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., STENCIL_WATCH_DEBOUNCE_MS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal only sees env values for bound keys
	v.BindEnv("extraction.include_private")
	v.BindEnv("extraction.include_export_keyword")
	v.BindEnv("extraction.include_decorators")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.size")
	v.BindEnv("output.copy")

	setDefaults(v)

	if l.userDir != "" {
		if err := mergeFile(v, l.userDir, ""); err != nil {
			return nil, err
		}
	}

	if l.configFile != "" {
		if err := mergeFile(v, "", l.configFile); err != nil {
			return nil, err
		}
	} else if err := mergeFile(v, filepath.Join(l.rootDir, ".stencil"), ""); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// mergeFile merges either an explicit file or config.{yml,yaml} from dir into
// v. A missing file in dir is not an error; a missing explicit file is.
func mergeFile(v *viper.Viper, dir, file string) error {
	if file == "" {
		for _, name := range []string{"config.yml", "config.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				file = candidate
				break
			}
		}
		if file == "" {
			return nil
		}
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	if err := v.MergeConfig(f); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
		return fmt.Errorf("failed to read config file %s: %w", file, err)
	}
	return nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("extraction.include_private", defaults.Extraction.IncludePrivate)
	v.SetDefault("extraction.include_export_keyword", defaults.Extraction.IncludeExportKeyword)
	v.SetDefault("extraction.include_decorators", defaults.Extraction.IncludeDecorators)

	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("paths.tree_ignore", defaults.Paths.TreeIgnore)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.size", defaults.Cache.Size)

	v.SetDefault("output.copy", defaults.Output.Copy)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig(opts ...LoaderOption) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd, opts...).Load()
}
