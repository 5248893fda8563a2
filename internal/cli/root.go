package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/stencil/internal/clipboard"
	"github.com/mvp-joe/stencil/internal/config"
	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/notify"
)

var (
	cfgFile string
	verbose bool
)

// errReported marks a failure the user has already been told about.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Stencil - copy the shape of your code",
	Long: `Stencil extracts the public interface of TypeScript, JavaScript and Python
files (class, function and type signatures without bodies) and renders
folder structures as text trees, ready to paste into an LLM prompt or a doc.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .stencil/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration for the working directory, honouring --config.
func loadConfig() (*config.Config, error) {
	var opts []config.LoaderOption
	if cfgFile != "" {
		opts = append(opts, config.WithConfigFile(cfgFile))
	}
	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newService builds the extraction service, with a result cache when enabled.
// The returned cleanup func releases the cache.
func newService(cfg *config.Config) (*extract.Service, func(), error) {
	if !cfg.Cache.Enabled {
		return extract.NewService(), func() {}, nil
	}

	cache, err := extract.NewResultCache(cfg.Cache.Size)
	if err != nil {
		return nil, nil, err
	}
	return extract.NewService(extract.WithCache(cache)), cache.Close, nil
}

// newNotifier returns the notifier for a command's error stream.
func newNotifier(w io.Writer) notify.Notifier {
	return notify.NewTerminal(w)
}

// newClipboard returns the system clipboard writer.
func newClipboard() clipboard.Writer {
	return clipboard.NewSystem()
}
