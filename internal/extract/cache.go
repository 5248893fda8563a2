package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// DefaultCacheSize is the number of results kept when no size is configured.
const DefaultCacheSize = 1024

// ResultCache memoizes extraction output by source content, file type and
// options. Extraction is deterministic, so a hit is identical to a fresh run.
type ResultCache struct {
	cache otter.Cache[string, string]
}

// NewResultCache creates a cache holding up to size results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := otter.MustBuilder[string, string](size).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build result cache: %w", err)
	}
	return &ResultCache{cache: cache}, nil
}

// Get returns a cached result.
func (c *ResultCache) Get(source []byte, ext string, opts extraction.Options) (string, bool) {
	return c.cache.Get(cacheKey(source, ext, opts))
}

// Set stores a successful result.
func (c *ResultCache) Set(source []byte, ext string, opts extraction.Options, text string) {
	c.cache.Set(cacheKey(source, ext, opts), text)
}

// Hits returns the number of cache hits so far.
func (c *ResultCache) Hits() int64 {
	return c.cache.Stats().Hits()
}

// Size returns the number of cached results.
func (c *ResultCache) Size() int {
	return c.cache.Size()
}

// Close releases the cache's background resources.
func (c *ResultCache) Close() {
	c.cache.Close()
}

func cacheKey(source []byte, ext string, opts extraction.Options) string {
	sum := sha256.Sum256(source)
	return fmt.Sprintf("%s:%s:%t%t%t", hex.EncodeToString(sum[:]), ext,
		opts.IncludePrivate, opts.IncludeExportKeyword, opts.IncludeDecorators)
}
