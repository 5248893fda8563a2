// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is available.
var ErrUnavailable = errors.New("clipboard is not available on this system")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// NewSystem returns a writer for the operating system clipboard.
func NewSystem() *System {
	return &System{}
}

// WriteText replaces the clipboard contents with text.
func (System) WriteText(text string) error {
	if Unsupported() {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Unsupported reports whether the system has no usable clipboard, e.g. a
// Linux host without xclip, xsel or wl-copy.
func Unsupported() bool {
	return clipboard.Unsupported
}

// Memory is an in-process clipboard for tests and headless runs.
type Memory struct {
	Text   string
	Writes int
}

// WriteText records text.
func (m *Memory) WriteText(text string) error {
	m.Text = text
	m.Writes++
	return nil
}
