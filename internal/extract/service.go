package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/stencil/internal/extraction"
	"github.com/mvp-joe/stencil/internal/parsers"
)

// Messages shown to users for the two non-text outcomes of an extraction.
const (
	EmptyMessage       = "No extractable interface for this file (check for classes)"
	UnsupportedMessage = "This file type is not supported for interface extraction."
)

// FileReader reads a file's contents. os.ReadFile satisfies it.
type FileReader func(path string) ([]byte, error)

// Result is the outcome of extracting one file.
type Result struct {
	Path     string
	Language string
	Text     string
	// Empty is true when the file parsed but had nothing to extract.
	Empty bool
	Err   error
}

// Service dispatches extraction requests to the extractor for each file type.
type Service struct {
	registry *parsers.Registry
	cache    *ResultCache
	readFile FileReader
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoizes extraction results.
func WithCache(cache *ResultCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithFileReader replaces os.ReadFile for ExtractFile.
func WithFileReader(read FileReader) Option {
	return func(s *Service) {
		s.readFile = read
	}
}

// NewService creates an extraction service backed by the default registry.
func NewService(opts ...Option) *Service {
	s := &Service{
		registry: parsers.NewRegistry(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract produces the interface text for source, choosing the extractor from
// the extension of path. An empty string means nothing was extractable.
func (s *Service) Extract(path string, source []byte, opts extraction.Options) (string, error) {
	extractor, ok := s.registry.Resolve(path)
	if !ok {
		return "", &extraction.UnsupportedFileTypeError{
			Path:      path,
			Extension: strings.ToLower(filepath.Ext(path)),
		}
	}

	ext := parsers.NormalizeExtension(path)
	if s.cache != nil {
		if text, ok := s.cache.Get(source, ext, opts); ok {
			return text, nil
		}
	}

	text, err := extractor.Extract(source, opts)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}

	if s.cache != nil {
		s.cache.Set(source, ext, opts, text)
	}
	return text, nil
}

// ExtractFile reads path and extracts its interface.
func (s *Service) ExtractFile(path string, opts extraction.Options) Result {
	result := Result{Path: path}

	kind, ok := parsers.KindFor(path)
	if !ok {
		result.Err = &extraction.UnsupportedFileTypeError{
			Path:      path,
			Extension: strings.ToLower(filepath.Ext(path)),
		}
		return result
	}
	result.Language = kind.String()

	source, err := s.readFile(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return result
	}

	text, err := s.Extract(path, source, opts)
	if err != nil {
		result.Err = err
		return result
	}

	result.Text = text
	result.Empty = strings.TrimSpace(text) == ""
	return result
}
