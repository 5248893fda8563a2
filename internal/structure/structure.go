// Package structure renders a directory as an indented text tree.
package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	space      = "    "
)

// DefaultIgnore lists entry names that are always skipped.
var DefaultIgnore = []string{"node_modules", ".git"}

// Matcher decides which entries are left out of the tree.
type Matcher struct {
	names    map[string]bool
	patterns []glob.Glob
}

// NewMatcher creates a matcher for the default names plus the given glob
// patterns. Patterns match slash-separated paths relative to the root and
// also bare entry names.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{names: make(map[string]bool, len(DefaultIgnore))}
	for _, name := range DefaultIgnore {
		m.names[name] = true
	}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.patterns = append(m.patterns, g)
	}
	return m, nil
}

// Ignored reports whether the entry at relPath is skipped.
func (m *Matcher) Ignored(relPath string) bool {
	if m == nil {
		return false
	}

	name := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		name = relPath[i+1:]
	}
	if m.names[name] {
		return true
	}

	for _, g := range m.patterns {
		if g.Match(relPath) || g.Match(name) || g.Match(relPath+"/**") {
			return true
		}
	}
	return false
}

// entry is one visible child of a directory.
type entry struct {
	name  string
	isDir bool
}

// Generate renders root and everything below it. The first line is the root
// directory's name followed by "/"; each line after it ends with "\n".
// A nil matcher applies only the default ignore names.
func Generate(root string, ignore *Matcher) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}

	if ignore == nil {
		ignore, _ = NewMatcher(nil)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(filepath.Base(abs) + "/\n")
	if err := render(&b, root, "", "", ignore); err != nil {
		return "", err
	}
	return b.String(), nil
}

func render(b *strings.Builder, dir, rel, indent string, ignore *Matcher) error {
	entries, err := readEntries(dir, rel, ignore)
	if err != nil {
		return err
	}

	for i, e := range entries {
		connector, childIndent := branch, pipe
		if i == len(entries)-1 {
			connector, childIndent = lastBranch, space
		}

		if !e.isDir {
			b.WriteString(indent + connector + e.name + "\n")
			continue
		}

		b.WriteString(indent + connector + e.name + "/\n")
		if err := render(b, filepath.Join(dir, e.name), joinRel(rel, e.name), indent+childIndent, ignore); err != nil {
			return err
		}
	}
	return nil
}

// readEntries lists dir's visible children: directories first, then files,
// each group sorted by name. Ignored entries are removed before the caller
// picks the last connector.
func readEntries(dir, rel string, ignore *Matcher) ([]entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if ignore.Ignored(joinRel(rel, de.Name())) {
			continue
		}

		// Symlinks report IsDir false, so linked directories are listed but not followed.
		entries = append(entries, entry{name: de.Name(), isDir: de.IsDir()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return entries[i].name < entries[j].name
	})
	return entries, nil
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
