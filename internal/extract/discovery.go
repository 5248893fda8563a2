package extract

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/stencil/internal/parsers"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds extractable files below a root directory.
type FileDiscovery struct {
	rootDir        string
	ignorePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.ignorePatterns = append(fd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// DiscoverFiles walks the directory tree and returns every file with a
// supported extension, in lexical order.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && fd.ShouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.ShouldIgnore(relPath) {
			return nil
		}
		if parsers.IsSupported(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// ShouldIgnore checks if a slash-separated relative path matches an ignore pattern.
func (fd *FileDiscovery) ShouldIgnore(relPath string) bool {
	// Always ignore the config directory
	if strings.HasPrefix(relPath, ".stencil/") || relPath == ".stencil" {
		return true
	}

	if fd.matchesAnyPattern(relPath) {
		return true
	}

	// "node_modules" should match pattern "node_modules/**"
	return fd.matchesAnyPattern(relPath + "/**")
}

// matchesAnyPattern checks if a path matches any ignore pattern.
func (fd *FileDiscovery) matchesAnyPattern(path string) bool {
	for _, cp := range fd.ignorePatterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level paths also match "**/"-prefixed patterns with the prefix removed,
	// so "**/*.md" matches both "README.md" and "docs/guide.md".
	if !strings.Contains(path, "/") {
		for _, cp := range fd.ignorePatterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
