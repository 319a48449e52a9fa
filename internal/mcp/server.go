// ABOUTME: MCP server setup for the medication tracker.
// ABOUTME: Wraps the MCP server with an adherence engine connection.
package mcp

import (
	"context"

	"github.com/harperreed/dose/internal/adherence"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	engine    *adherence.Engine
}

// NewServer creates a new MCP server over the given engine.
func NewServer(engine *adherence.Engine) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "dose",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		engine:    engine,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
