package extraction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for extraction errors:
// - UnsupportedFileTypeError matches ErrUnsupportedFileType through wrapping
// - ParseError matches ErrParseFailure and its cause
// - Messages name the extension, path and language

func TestUnsupportedFileTypeError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", &UnsupportedFileTypeError{Path: "a/data.json", Extension: ".json"})

	assert.True(t, errors.Is(err, ErrUnsupportedFileType))
	assert.True(t, IsUnsupported(err))
	assert.False(t, errors.Is(err, ErrParseFailure))
	assert.Contains(t, err.Error(), `".json"`)
	assert.Contains(t, err.Error(), "a/data.json")

	noExt := &UnsupportedFileTypeError{Path: "Makefile"}
	assert.Equal(t, "unsupported file type: Makefile has no extension", noExt.Error())
}

func TestParseError(t *testing.T) {
	t.Parallel()

	cause := errors.New("incompatible grammar version")
	err := &ParseError{Language: "typescript", Err: cause}

	assert.True(t, errors.Is(err, ErrParseFailure))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsUnsupported(err))
	assert.Equal(t, "failed to parse typescript source: incompatible grammar version", err.Error())

	bare := &ParseError{Language: "tsx"}
	assert.True(t, errors.Is(bare, ErrParseFailure))
	assert.Equal(t, "failed to parse tsx source", bare.Error())
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Options{IncludeDecorators: true}, DefaultOptions())
	assert.Equal(t, "type", KindTypeAlias.String())
}
