package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/stencil/internal/clipboard"
	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/extraction"
	"github.com/mvp-joe/stencil/internal/notify"
)

var (
	privateFlag    bool
	exportFlag     bool
	decoratorsFlag bool
	copyFlag       bool
	progressFlag   bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file|dir>...",
	Short: "Print the public interface of source files",
	Long: `Extract prints class, function, interface, type alias and enum signatures
without their bodies. TypeScript and JavaScript are parsed with tree-sitter;
Python classes are rendered as TypeScript-style interfaces.

A directory argument extracts every supported file below it, each preceded
by a "// path" header.

Examples:
  # Print the interface of one file
  stencil extract src/service.ts

  # Include private members and keep export keywords
  stencil extract --private --export src/service.ts

  # Copy the interfaces of a whole package to the clipboard
  stencil extract --copy --progress src/models
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&privateFlag, "private", false, "Include non-exported declarations and private members")
	extractCmd.Flags().BoolVar(&exportFlag, "export", false, "Keep the export keyword")
	extractCmd.Flags().BoolVar(&decoratorsFlag, "decorators", true, "Include decorators and doc comments")
	extractCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the result to the clipboard")
	extractCmd.Flags().BoolVarP(&progressFlag, "progress", "p", false, "Show a progress bar for directories")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, cleanup, err := newService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Flags override config only when set explicitly.
	opts := cfg.Extraction
	if cmd.Flags().Changed("private") {
		opts.IncludePrivate = privateFlag
	}
	if cmd.Flags().Changed("export") {
		opts.IncludeExportKeyword = exportFlag
	}
	if cmd.Flags().Changed("decorators") {
		opts.IncludeDecorators = decoratorsFlag
	}

	copyResult := cfg.Output.Copy
	if cmd.Flags().Changed("copy") {
		copyResult = copyFlag
	}

	runner := &extractRunner{
		service:  service,
		ignore:   cfg.Paths.Ignore,
		opts:     opts,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		notifier: newNotifier(cmd.ErrOrStderr()),
		progress: progressFlag,
	}
	if copyResult {
		runner.clipboard = newClipboard()
	}
	return runner.run(cmd.Context(), args)
}

// extractRunner carries one extract invocation's collaborators.
type extractRunner struct {
	service   *extract.Service
	ignore    []string
	opts      extraction.Options
	out       io.Writer
	errOut    io.Writer
	notifier  notify.Notifier
	clipboard clipboard.Writer // nil disables copying
	progress  bool
}

func (r *extractRunner) run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return r.single(args[0])
		}
	}

	paths, err := r.collect(args)
	if err != nil {
		return err
	}
	return r.batch(ctx, paths)
}

// single extracts one file the way the editor command does: a message for
// unsupported or empty files, otherwise the interface text.
func (r *extractRunner) single(path string) error {
	result := r.service.ExtractFile(path, r.opts)
	if result.Err != nil {
		if errors.Is(result.Err, extraction.ErrUnsupportedFileType) {
			r.notifier.Error(extract.UnsupportedMessage)
			return errReported
		}
		r.notifier.Error("Error extracting interface: " + result.Err.Error())
		return errReported
	}

	if result.Empty {
		r.notifier.Warning(extract.EmptyMessage)
		return nil
	}

	fmt.Fprint(r.out, ensureNewline(result.Text))
	return r.copy(result.Text, "File interface copied to clipboard!")
}

// collect expands directory arguments into supported files.
func (r *extractRunner) collect(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		discovery, err := extract.NewFileDiscovery(arg, r.ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern: %w", err)
		}
		files, err := discovery.DiscoverFiles()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

// batch extracts many files and prints each non-empty result under a header.
func (r *extractRunner) batch(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		r.notifier.Warning("No supported files found")
		return nil
	}

	reporter := NewCLIProgressReporter(r.errOut, !r.progress)
	reporter.OnStart(len(paths))

	results, err := r.service.ExtractAll(ctx, paths, r.opts, reporter.OnFileProcessed)
	if err != nil {
		return err
	}
	reporter.OnComplete()

	var sections []string
	for _, result := range results {
		switch {
		case errors.Is(result.Err, extraction.ErrUnsupportedFileType):
			r.notifier.Warning(fmt.Sprintf("%s: %s", result.Path, extract.UnsupportedMessage))
		case result.Err != nil:
			log.Printf("Warning: %v", result.Err)
		case result.Empty:
			if verbose {
				log.Printf("Skipping %s: nothing to extract", result.Path)
			}
		default:
			sections = append(sections, "// "+filepath.ToSlash(result.Path)+"\n"+ensureNewline(result.Text))
		}
	}

	if len(sections) == 0 {
		r.notifier.Warning(extract.EmptyMessage)
		return nil
	}

	text := strings.Join(sections, "\n")
	fmt.Fprint(r.out, text)
	return r.copy(text, fmt.Sprintf("Interfaces of %d files copied to clipboard!", len(sections)))
}

func (r *extractRunner) copy(text, message string) error {
	if r.clipboard == nil {
		return nil
	}
	if err := r.clipboard.WriteText(text); err != nil {
		r.notifier.Error(err.Error())
		return errReported
	}
	r.notifier.Info(message)
	return nil
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
