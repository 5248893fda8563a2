package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/stencil/internal/parsers"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and file extensions",
	Run: func(cmd *cobra.Command, args []string) {
		groups := parsers.ExtensionsByLanguage()

		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, strings.Join(groups[name], " "))
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
