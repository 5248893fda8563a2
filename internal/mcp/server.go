package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/extraction"
)

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// RootDir resolves relative paths in tool arguments.
	RootDir string
	// Defaults apply when a tool call omits an extraction flag.
	Defaults extraction.Options
	// Ignore holds glob patterns always skipped by folder_structure.
	Ignore []string
	// Version is reported to clients.
	Version string
}

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config *ServerConfig
	mcp    *server.MCPServer
}

// NewMCPServer creates a new MCP server exposing extraction tools.
func NewMCPServer(config *ServerConfig, service *extract.Service) (*MCPServer, error) {
	if config == nil {
		return nil, fmt.Errorf("server config is required")
	}
	if service == nil {
		return nil, fmt.Errorf("extraction service is required")
	}

	version := config.Version
	if version == "" {
		version = "dev"
	}

	mcpServer := server.NewMCPServer(
		"stencil",
		version,
		server.WithToolCapabilities(true),
	)

	AddExtractInterfaceTool(mcpServer, service, config)
	AddFolderStructureTool(mcpServer, config)

	return &MCPServer{
		config: config,
		mcp:    mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
