// Package notify shows short status messages to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier displays informational, warning and error messages. Messages are
// fire-and-forget; a failed write is not reported.
type Notifier interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Terminal writes styled messages to an io.Writer, typically stderr.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Info shows an informational message.
func (t *Terminal) Info(msg string) {
	t.write(infoStyle.Render("✓"), msg)
}

// Warning shows a warning.
func (t *Terminal) Warning(msg string) {
	t.write(warningStyle.Render("!"), msg)
}

// Error shows an error.
func (t *Terminal) Error(msg string) {
	t.write(errorStyle.Render("✗"), msg)
}

func (t *Terminal) write(icon, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", icon, msg)
}

// Level identifies a recorded message's severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps notifications in memory for tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }
func (r *Recorder) Warning(msg string) { r.add(LevelWarning, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Level: level, Text: msg})
}
