package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for secretpass.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingSessionService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "secretpass",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the session and serves MCP over stdio.
// It blocks until the context is cancelled or the client disconnects,
// then closes the session.
func (s *Server) Run(ctx context.Context) error {
	return s.run(ctx, &mcp.StdioTransport{})
}

func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	if err := s.ports.Session.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer s.ports.Session.Close()

	logger.Info("mcp: serving session %s", s.ports.Session.ID())
	return s.server.Run(ctx, transport)
}
