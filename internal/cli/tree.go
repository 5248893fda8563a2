package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/stencil/internal/structure"
)

var treeCopyFlag bool

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "Print a directory as a text tree",
	Long: `Tree prints the folder structure below dir (default: current directory).
Directories are listed first and end with "/". node_modules, .git and the
paths.tree_ignore patterns from the config are skipped.

Examples:
  stencil tree
  stencil tree --copy src
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVarP(&treeCopyFlag, "copy", "c", false, "Copy the tree to the clipboard")
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	matcher, err := structure.NewMatcher(cfg.Paths.TreeIgnore)
	if err != nil {
		return err
	}

	notifier := newNotifier(cmd.ErrOrStderr())
	tree, err := structure.Generate(dir, matcher)
	if err != nil {
		notifier.Error("Error copying folder structure: " + err.Error())
		return errReported
	}

	fmt.Fprint(cmd.OutOrStdout(), tree)

	copyTree := cfg.Output.Copy
	if cmd.Flags().Changed("copy") {
		copyTree = treeCopyFlag
	}
	if !copyTree {
		return nil
	}

	if err := newClipboard().WriteText(tree); err != nil {
		notifier.Error(err.Error())
		return errReported
	}
	notifier.Info("Folder structure copied to clipboard!")
	return nil
}
