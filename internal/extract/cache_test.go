package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// Test Plan for ResultCache:
// - A repeated extraction is served from the cache with identical output
// - Different options, extensions or contents do not share entries
// - Failed extractions are not cached
// - Non-positive sizes fall back to the default

func newTestCache(t *testing.T) *ResultCache {
	t.Helper()
	cache, err := NewResultCache(64)
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return cache
}

func TestResultCache_Hit(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	svc := NewService(WithCache(cache))
	source := []byte("export class A {\n  run(): void {}\n}\n")

	first, err := svc.Extract("a.ts", source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(0), cache.Hits())

	second, err := svc.Extract("b.ts", source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), cache.Hits())
	assert.Equal(t, 1, cache.Size())
}

func TestResultCache_KeyedByOptionsAndExtension(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	source := []byte("x")

	cache.Set(source, ".ts", extraction.Options{}, "plain")

	_, ok := cache.Get(source, ".ts", extraction.Options{IncludePrivate: true})
	assert.False(t, ok)
	_, ok = cache.Get(source, ".tsx", extraction.Options{})
	assert.False(t, ok)
	_, ok = cache.Get([]byte("y"), ".ts", extraction.Options{})
	assert.False(t, ok)

	text, ok := cache.Get(source, ".ts", extraction.Options{})
	assert.True(t, ok)
	assert.Equal(t, "plain", text)
}

func TestResultCache_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	svc := NewService(WithCache(cache))

	_, err := svc.Extract("data.json", []byte("{}"), extraction.DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, 0, cache.Size())
}

func TestNewResultCache_DefaultSize(t *testing.T) {
	t.Parallel()

	cache, err := NewResultCache(0)
	require.NoError(t, err)
	defer cache.Close()

	cache.Set([]byte("x"), ".py", extraction.Options{}, "")
	_, ok := cache.Get([]byte("x"), ".py", extraction.Options{})
	assert.True(t, ok)
}
