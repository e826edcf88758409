// Package mcp exposes one-shot sentiment analysis over the Model Context
// Protocol.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"sentilytics/internal/domain/analysis"
	"sentilytics/pkg/logger"
)

const (
	// ServerName is the name of the MCP server.
	ServerName = "sentilytics-mcp"
	// ServerVersion is the version of the MCP server.
	ServerVersion = "0.1.0"
)

// Server wraps the MCP server with the analysis tools.
type Server struct {
	mcpServer *server.MCPServer
	handlers  *Handlers
}

// NewServer creates a new MCP server. runs may be nil, in which case the run
// history tool reports that no history is kept.
func NewServer(fetcher analysis.Fetcher, runs analysis.RunRecorder, log logger.Logger) *Server {
	handlers := NewHandlers(fetcher, runs, log)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		handlers:  handlers,
	}
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	for _, tool := range ToolDefinitions() {
		switch tool.Name {
		case ToolAnalyze:
			s.mcpServer.AddTool(tool, s.handlers.HandleAnalyze)
		case ToolTrend:
			s.mcpServer.AddTool(tool, s.handlers.HandleTrend)
		case ToolRuns:
			s.mcpServer.AddTool(tool, s.handlers.HandleRuns)
		}
	}
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeContext starts the MCP server on stdio with a context.
func (s *Server) ServeContext(ctx context.Context) error {
	return server.ServeStdio(s.mcpServer, server.WithStdioContextFunc(func(_ context.Context) context.Context {
		return ctx
	}))
}
