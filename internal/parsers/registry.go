package parsers

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// Kind identifies which extractor handles an extension.
type Kind int

const (
	KindTypeScript Kind = iota + 1
	KindTSX
	KindJavaScript
	KindPython
)

// String returns the language name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTypeScript:
		return "typescript"
	case KindTSX:
		return "tsx"
	case KindJavaScript:
		return "javascript"
	case KindPython:
		return "python"
	default:
		return "unknown"
	}
}

// extensions maps a lower-case extension to the extractor kind that handles it.
var extensions = map[string]Kind{
	".ts":  KindTypeScript,
	".mts": KindTypeScript,
	".cts": KindTypeScript,
	".tsx": KindTSX,
	".js":  KindJavaScript,
	".jsx": KindJavaScript,
	".mjs": KindJavaScript,
	".cjs": KindJavaScript,
	".py":  KindPython,
	".pyi": KindPython,
}

// constructors builds one extractor per kind.
var constructors = map[Kind]func() extraction.Extractor{
	KindTypeScript: func() extraction.Extractor { return NewTypeScriptParser() },
	KindTSX:        func() extraction.Extractor { return NewTSXParser() },
	KindJavaScript: func() extraction.Extractor { return NewJavaScriptParser() },
	KindPython:     func() extraction.Extractor { return NewPythonParser() },
}

// lazyExtractor constructs its extractor on first use.
type lazyExtractor struct {
	once      sync.Once
	extractor extraction.Extractor
}

// Registry resolves file extensions to extractors. Extractors are stateless,
// so one instance per kind is shared by all callers.
type Registry struct {
	extractors map[Kind]*lazyExtractor
}

// NewRegistry creates a registry covering every supported extension.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[Kind]*lazyExtractor, len(constructors))}
	for kind := range constructors {
		r.extractors[kind] = &lazyExtractor{}
	}
	return r
}

// Resolve returns the extractor for an extension (".ts", "ts") or a file path.
func (r *Registry) Resolve(extOrPath string) (extraction.Extractor, bool) {
	kind, ok := KindFor(extOrPath)
	if !ok {
		return nil, false
	}

	lazy := r.extractors[kind]
	lazy.once.Do(func() {
		lazy.extractor = constructors[kind]()
	})
	return lazy.extractor, true
}

// KindFor returns the extractor kind for an extension or file path.
func KindFor(extOrPath string) (Kind, bool) {
	kind, ok := extensions[NormalizeExtension(extOrPath)]
	return kind, ok
}

// IsSupported reports whether a path or extension has an extractor.
func IsSupported(extOrPath string) bool {
	_, ok := KindFor(extOrPath)
	return ok
}

// NormalizeExtension lower-cases ext and ensures a leading dot. Whole paths
// are reduced to their extension.
func NormalizeExtension(extOrPath string) string {
	ext := extOrPath
	if strings.ContainsAny(ext, `/\`) || strings.Count(ext, ".") > 1 || (!strings.HasPrefix(ext, ".") && strings.Contains(ext, ".")) {
		ext = filepath.Ext(ext)
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SupportedExtensions returns every supported extension, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtensionsByLanguage groups supported extensions by language name.
func ExtensionsByLanguage() map[string][]string {
	groups := make(map[string][]string)
	for _, ext := range SupportedExtensions() {
		lang := extensions[ext].String()
		groups[lang] = append(groups[lang], ext)
	}
	return groups
}
