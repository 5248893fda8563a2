package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/extraction"
	"github.com/mvp-joe/stencil/internal/parsers"
	"github.com/mvp-joe/stencil/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-extract interfaces as files change",
	Long: `Watch monitors dir (default: current directory) and prints the interface of
every supported file that is created or modified, after a short debounce.

Example:
  stencil watch src
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	service, cleanup, err := newService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	discovery, err := extract.NewFileDiscovery(dir, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid ignore pattern: %w", err)
	}

	fw, err := watcher.NewFileWatcher(dir, watcher.Options{
		Extensions: parsers.SupportedExtensions(),
		Debounce:   cfg.Debounce(),
		Ignore:     discovery.ShouldIgnore,
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer fw.Stop()

	out := cmd.OutOrStdout()
	notifier := newNotifier(cmd.ErrOrStderr())
	if err := fw.Start(ctx, pausingCallback(fw, func(files []string) {
		printChanged(out, service, files, cfg.Extraction)
	})); err != nil {
		return err
	}

	notifier.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", dir))
	<-ctx.Done()
	return nil
}

// pausingCallback runs handle off the watcher's event loop. The watcher is
// paused while handle runs, so changes saved meanwhile arrive as one batch
// when it finishes. Batches never overlap.
func pausingCallback(fw watcher.FileWatcher, handle func(files []string)) func(files []string) {
	var mu sync.Mutex
	return func(files []string) {
		fw.Pause()
		go func() {
			defer fw.Resume()
			mu.Lock()
			defer mu.Unlock()
			handle(files)
		}()
	}
}

// printChanged extracts each changed file and prints it under a header.
func printChanged(out io.Writer, service *extract.Service, files []string, opts extraction.Options) {
	for _, path := range files {
		result := service.ExtractFile(path, opts)
		switch {
		case result.Err != nil:
			// Files removed between the event and the read are expected.
			if !errors.Is(result.Err, fs.ErrNotExist) {
				log.Printf("Warning: %v", result.Err)
			}
		case result.Empty:
			if verbose {
				log.Printf("%s: nothing to extract", path)
			}
		default:
			fmt.Fprintf(out, "// %s\n%s", filepath.ToSlash(path), ensureNewline(result.Text))
		}
	}
}
