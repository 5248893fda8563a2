package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/stencil/internal/extract"
)

// CLIProgressReporter shows batch extraction progress with a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	mu        sync.Mutex
	fileBar   *progressbar.ProgressBar
	startTime time.Time
	processed int
	empty     int
	failed    int
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
	}
}

// OnStart creates the progress bar for totalFiles files.
func (c *CLIProgressReporter) OnStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Extracting interfaces"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

// OnFileProcessed records one finished file. Safe for concurrent use.
func (c *CLIProgressReporter) OnFileProcessed(result extract.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed++
	switch {
	case result.Err != nil:
		c.failed++
	case result.Empty:
		c.empty++
	}

	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

// OnComplete prints a summary line.
func (c *CLIProgressReporter) OnComplete() {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "✓ Extracted %s files in %.1fs (%d empty, %d failed)\n",
		formatNumber(c.processed), time.Since(c.startTime).Seconds(), c.empty, c.failed)
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
