package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/extraction"
	"github.com/mvp-joe/stencil/internal/parsers"
)

// AddExtractInterfaceTool registers the extract_interface tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddExtractInterfaceTool(s *server.MCPServer, service *extract.Service, config *ServerConfig) {
	tool := mcp.NewTool(
		"extract_interface",
		mcp.WithDescription(`Extract the public interface of a TypeScript, JavaScript or Python file.

Returns class, function, interface, type alias and enum signatures without bodies.
Python classes are rendered as TypeScript-style interfaces.

Pass "source" to extract from unsaved content; "path" then only selects the language.`),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path, absolute or relative to the project root")),
		mcp.WithString("source",
			mcp.Description("File content to use instead of reading path")),
		mcp.WithBoolean("include_private",
			mcp.Description("Include non-exported declarations and private members")),
		mcp.WithBoolean("include_export",
			mcp.Description("Keep the export keyword on declarations")),
		mcp.WithBoolean("include_decorators",
			mcp.Description("Include decorators and doc comments")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createExtractInterfaceHandler(service, config))
}

// createExtractInterfaceHandler creates the handler function for extract_interface tool.
func createExtractInterfaceHandler(service *extract.Service, config *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.Params.Arguments.(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var args extractInterfaceArgs
		if err := coerceBindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		path := args.Path
		opts := args.options(config.Defaults)

		resolved := resolvePath(config.RootDir, path)

		var result extract.Result
		if args.Source != nil {
			result = extract.Result{Path: resolved}
			if kind, ok := parsers.KindFor(resolved); ok {
				result.Language = kind.String()
			}
			text, err := service.Extract(resolved, []byte(*args.Source), opts)
			result.Text, result.Err = text, err
			result.Empty = err == nil && text == ""
		} else {
			result = service.ExtractFile(resolved, opts)
		}

		if result.Err != nil {
			if errors.Is(result.Err, extraction.ErrUnsupportedFileType) {
				return mcp.NewToolResultError(extract.UnsupportedMessage), nil
			}
			return mcp.NewToolResultError(result.Err.Error()), nil
		}

		response := &ExtractInterfaceResponse{
			Path:      path,
			Language:  result.Language,
			Interface: result.Text,
			Empty:     result.Empty,
		}
		if result.Empty {
			response.Message = extract.EmptyMessage
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		// Return as text result (mcp-go convention)
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// extractInterfaceArgs are the arguments of the extract_interface tool. Nil
// flags fall back to the server defaults.
type extractInterfaceArgs struct {
	Path              string  `json:"path"`
	Source            *string `json:"source"`
	IncludePrivate    *bool   `json:"include_private"`
	IncludeExport     *bool   `json:"include_export"`
	IncludeDecorators *bool   `json:"include_decorators"`
}

// options applies the flags that were set on top of defaults.
func (a extractInterfaceArgs) options(defaults extraction.Options) extraction.Options {
	opts := defaults
	if a.IncludePrivate != nil {
		opts.IncludePrivate = *a.IncludePrivate
	}
	if a.IncludeExport != nil {
		opts.IncludeExportKeyword = *a.IncludeExport
	}
	if a.IncludeDecorators != nil {
		opts.IncludeDecorators = *a.IncludeDecorators
	}
	return opts
}

// ExtractInterfaceResponse represents the JSON response schema for the extract_interface MCP tool.
type ExtractInterfaceResponse struct {
	Path      string `json:"path"`
	Language  string `json:"language"`
	Interface string `json:"interface"`
	Empty     bool   `json:"empty"`
	Message   string `json:"message,omitempty"`
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
