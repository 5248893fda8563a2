package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/stencil/internal/structure"
)

// AddFolderStructureTool registers the folder_structure tool with an MCP server.
func AddFolderStructureTool(s *server.MCPServer, config *ServerConfig) {
	tool := mcp.NewTool(
		"folder_structure",
		mcp.WithDescription("Render a directory as an indented tree. Directories come first and end with '/'. node_modules and .git are always skipped."),
		mcp.WithString("path",
			mcp.Description("Directory, absolute or relative to the project root (default: project root)")),
		mcp.WithArray("ignore",
			mcp.Description("Additional glob patterns to skip, e.g. ['dist', '**/*.log']")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFolderStructureHandler(config))
}

// createFolderStructureHandler creates the handler function for folder_structure tool.
func createFolderStructureHandler(config *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.Params.Arguments.(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var args folderStructureArgs
		if err := coerceBindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		path := args.Path
		if path == "" {
			path = "."
		}

		patterns := append(append([]string{}, config.Ignore...), args.Ignore...)
		matcher, err := structure.NewMatcher(patterns)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tree, err := structure.Generate(resolvePath(config.RootDir, path), matcher)
		if err != nil {
			return mcp.NewToolResultError("Error copying folder structure: " + err.Error()), nil
		}

		return mcp.NewToolResultText(tree), nil
	}
}

// folderStructureArgs are the arguments of the folder_structure tool.
type folderStructureArgs struct {
	Path   string   `json:"path"`
	Ignore []string `json:"ignore"`
}
