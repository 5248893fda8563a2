package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/extraction"
)

// Test Plan for watch command:
// - the watcher is paused before a batch is handled and resumed after it
// - batches handled from overlapping callbacks never run concurrently
// - printChanged prints each changed file under a header and skips deleted files

// recordingWatcher records Pause/Resume calls.
type recordingWatcher struct {
	mu    sync.Mutex
	calls []string
}

func (w *recordingWatcher) Start(ctx context.Context, callback func(files []string)) error {
	return nil
}

func (w *recordingWatcher) Stop() error { return nil }

func (w *recordingWatcher) Pause() { w.record("pause") }

func (w *recordingWatcher) Resume() { w.record("resume") }

func (w *recordingWatcher) record(call string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
}

func (w *recordingWatcher) snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func TestPausingCallback_PausesWhileHandling(t *testing.T) {
	t.Parallel()

	fw := &recordingWatcher{}
	handled := make(chan []string, 1)
	cb := pausingCallback(fw, func(files []string) {
		fw.record("handle")
		handled <- files
	})

	cb([]string{"a.ts"})

	select {
	case files := <-handled:
		assert.Equal(t, []string{"a.ts"}, files)
	case <-time.After(2 * time.Second):
		t.Fatal("batch was not handled")
	}

	require.Eventually(t, func() bool {
		return len(fw.snapshot()) == 3
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"pause", "handle", "resume"}, fw.snapshot())
}

func TestPausingCallback_BatchesDoNotOverlap(t *testing.T) {
	t.Parallel()

	fw := &recordingWatcher{}
	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	wg.Add(3)
	cb := pausingCallback(fw, func(files []string) {
		defer wg.Done()
		mu.Lock()
		running++
		if running > maxSeen {
			maxSeen = running
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
	})

	cb([]string{"a.ts"})
	cb([]string{"b.ts"})
	cb([]string{"c.ts"})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxSeen)
}

func TestPrintChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "api.ts")
	require.NoError(t, os.WriteFile(path, []byte("export function ping(): string { return \"pong\"; }\n"), 0644))

	var out bytes.Buffer
	printChanged(&out, extract.NewService(), []string{path, filepath.Join(dir, "gone.ts")}, extraction.DefaultOptions())

	assert.Equal(t, "// "+filepath.ToSlash(path)+"\nfunction ping(): string;\n", out.String())
}
