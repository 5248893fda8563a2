package extraction

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType indicates no extractor is registered for a file extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrParseFailure indicates the parser could not produce even a partial tree.
	ErrParseFailure = errors.New("parse failure")
)

// UnsupportedFileTypeError reports the path and extension that could not be dispatched.
type UnsupportedFileTypeError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("%s: %s has no extension", ErrUnsupportedFileType, e.Path)
	}
	return fmt.Sprintf("%s: %q (%s)", ErrUnsupportedFileType, e.Extension, e.Path)
}

func (e *UnsupportedFileTypeError) Unwrap() error {
	return ErrUnsupportedFileType
}

// ParseError wraps a catastrophic parser failure for a language.
type ParseError struct {
	Language string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to parse %s source", e.Language)
	}
	return fmt.Sprintf("failed to parse %s source: %v", e.Language, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParseFailure}
	}
	return []error{ErrParseFailure, e.Err}
}

// IsUnsupported reports whether err is (or wraps) ErrUnsupportedFileType.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedFileType)
}
