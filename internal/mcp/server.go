// ABOUTME: MCP server setup for the fitness and sleep journal.
// ABOUTME: Wraps the MCP server with a storage Repository and analyzer settings.
package mcp

import (
	"context"

	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/coach"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	opts      analyzer.Options
	coach     *coach.Client
	logger    *zap.Logger
}

// NewServer creates a new MCP server. coachClient may be nil.
func NewServer(repo storage.Repository, opts analyzer.Options, coachClient *coach.Client, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitlog",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		opts:      opts,
		coach:     coachClient,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("transport", "stdio"))
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// analyzerFor applies per-call overrides to the server defaults.
func (s *Server) analyzerFor(window int, mode string) (*analyzer.Analyzer, error) {
	opts := s.opts
	if window > 0 {
		opts.Window = window
	}
	if mode != "" {
		m, err := analyzer.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		opts.Mode = m
	}
	return analyzer.New(opts), nil
}
