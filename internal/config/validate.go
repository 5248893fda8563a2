package config

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidDebounce indicates a negative or zero watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidCacheSize indicates a non-positive cache size for an enabled cache
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidPattern indicates an ignore pattern that does not compile
	ErrInvalidPattern = errors.New("invalid ignore pattern")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error
	patterns := append(append([]string{}, cfg.Ignore...), cfg.TreeIgnore...)
	for _, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}
	return errors.Join(errs...)
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs <= 0 {
		return fmt.Errorf("%w: debounce_ms must be positive, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	// A disabled cache ignores its size.
	if cfg.Enabled && cfg.Size <= 0 {
		return fmt.Errorf("%w: size must be positive when the cache is enabled, got %d", ErrInvalidCacheSize, cfg.Size)
	}
	return nil
}
