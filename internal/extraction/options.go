package extraction

// Options controls which parts of a source file end up in the extracted interface.
// It only filters output; it never changes how a file is parsed.
type Options struct {
	// IncludePrivate emits non-public members and non-exported top-level declarations.
	IncludePrivate bool `yaml:"include_private" mapstructure:"include_private"`

	// IncludeExportKeyword keeps the export qualifier on top-level declarations.
	IncludeExportKeyword bool `yaml:"include_export_keyword" mapstructure:"include_export_keyword"`

	// IncludeDecorators keeps decorators and doc comments attached to declarations.
	IncludeDecorators bool `yaml:"include_decorators" mapstructure:"include_decorators"`
}

// DefaultOptions returns the preset used by the copy-interface command:
// public surface only, no export keyword, decorators kept.
func DefaultOptions() Options {
	return Options{
		IncludePrivate:       false,
		IncludeExportKeyword: false,
		IncludeDecorators:    true,
	}
}

// Extractor produces a normalized interface summary for one source file.
// Implementations are stateless and safe for concurrent use.
type Extractor interface {
	// Extract returns the interface text for source. An empty string means the
	// file had nothing to extract and is not an error.
	Extract(source []byte, opts Options) (string, error)

	// Language names the source language handled by this extractor.
	Language() string
}
