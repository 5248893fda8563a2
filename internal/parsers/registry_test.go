package parsers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Registry:
// - Every supported extension resolves to the extractor for its language
// - Extensions and paths are normalized (case, leading dot, whole paths)
// - Unsupported extensions are not found
// - Each kind is constructed once and shared, including under concurrency
// - SupportedExtensions is sorted and grouped by language

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		language string
	}{
		{".ts", "typescript"},
		{"ts", "typescript"},
		{".MTS", "typescript"},
		{"src/app/service.cts", "typescript"},
		{"Component.tsx", "tsx"},
		{".js", "javascript"},
		{"index.jsx", "javascript"},
		{"lib/util.mjs", "javascript"},
		{".cjs", "javascript"},
		{"models.py", "python"},
		{`pkg\stubs.pyi`, "python"},
		{"archive.test.PY", "python"},
	}

	registry := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			extractor, ok := registry.Resolve(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.language, extractor.Language())
		})
	}
}

func TestRegistry_Unsupported(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, input := range []string{".json", "go", "README", "", "config.yaml", "Makefile"} {
		_, ok := registry.Resolve(input)
		assert.False(t, ok, "input %q", input)
		assert.False(t, IsSupported(input), "input %q", input)
	}
}

func TestRegistry_SharedInstance(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	first, ok := registry.Resolve(".ts")
	require.True(t, ok)
	second, ok := registry.Resolve("other.mts")
	require.True(t, ok)
	assert.Same(t, first, second)

	// Concurrent first use still yields a single instance.
	fresh := NewRegistry()
	results := make([]any, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, _ := fresh.Resolve(".py")
			results[i] = e
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestNormalizeExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".ts", NormalizeExtension("TS"))
	assert.Equal(t, ".ts", NormalizeExtension(".ts"))
	assert.Equal(t, ".py", NormalizeExtension("a/b/c.py"))
	assert.Equal(t, ".tsx", NormalizeExtension("App.TSX"))
	assert.Equal(t, "", NormalizeExtension(""))
}

func TestSupportedExtensions(t *testing.T) {
	t.Parallel()

	exts := SupportedExtensions()
	assert.IsNonDecreasing(t, exts)
	assert.Len(t, exts, 10)
	assert.Contains(t, exts, ".py")
	assert.NotContains(t, exts, ".json")

	groups := ExtensionsByLanguage()
	assert.Equal(t, []string{".cts", ".mts", ".ts"}, groups["typescript"])
	assert.Equal(t, []string{".tsx"}, groups["tsx"])
	assert.Equal(t, []string{".cjs", ".js", ".jsx", ".mjs"}, groups["javascript"])
	assert.Equal(t, []string{".py", ".pyi"}, groups["python"])
}
