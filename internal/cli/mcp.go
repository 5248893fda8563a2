package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/stencil/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for interface extraction",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
request file interfaces and folder structures directly.

The MCP server:
- Provides the extract_interface tool (TypeScript, JavaScript, Python)
- Provides the folder_structure tool
- Communicates via stdio (standard MCP transport)

Example:
  stencil mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	service, cleanup, err := newService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// stdout carries the protocol; status goes to stderr.
	fmt.Fprintf(os.Stderr, "Stencil MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project Root: %s\n\n", projectPath)

	server, err := mcp.NewMCPServer(&mcp.ServerConfig{
		RootDir:  projectPath,
		Defaults: cfg.Extraction,
		Ignore:   cfg.Paths.TreeIgnore,
		Version:  Version,
	}, service)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
