// ABOUTME: MCP server setup for the trainer.
// ABOUTME: Exposes the use-case facade as MCP tools and resources over stdio.
package mcp

import (
	"context"

	"github.com/harperreed/trainer/internal/app"
	"github.com/harperreed/trainer/internal/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server wraps the MCP server with facade access.
type Server struct {
	mcpServer *mcp.Server
	svc       *app.Service
	log       *zap.Logger
}

// NewServer creates a new MCP server backed by svc.
func NewServer(svc *app.Service, version string, logger *zap.Logger) (*Server, error) {
	if version == "" {
		version = "dev"
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trainer",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		log:       logging.OrNop(logger),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("MCP server starting on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
