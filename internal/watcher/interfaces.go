package watcher

import "context"

// FileWatcher monitors source files for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching, calling callback with each debounced batch of changed files.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources. Safe to call more than once.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

// IgnoreFunc reports whether a path below the watched root should be skipped.
// relPath is slash-separated and relative to the watched directory.
type IgnoreFunc func(relPath string) bool
