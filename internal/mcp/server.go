package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Server wires the catalog, the bleve searcher, and the MCP stdio transport
// together for one serving session.
type Server struct {
	catalog  *symbols.Catalog
	searcher *Searcher
	mcp      *server.MCPServer
}

// NewServer builds the search index over cat and registers the tools.
func NewServer(cat *symbols.Catalog) (*Server, error) {
	searcher, err := NewSearcher(cat)
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"apidef",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	AddSearchSymbolsTool(mcpServer, searcher)
	AddGetSymbolTool(mcpServer, cat)
	AddResolveNeedsTool(mcpServer, cat)

	return &Server{
		catalog:  cat,
		searcher: searcher,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the stdio server and blocks until a shutdown signal, a
// transport error, or context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio (%d symbols indexed)...", len(s.catalog.Symbols))
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
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

// Close releases the search index.
func (s *Server) Close() error {
	if s.searcher != nil {
		return s.searcher.Close()
	}
	return nil
}
