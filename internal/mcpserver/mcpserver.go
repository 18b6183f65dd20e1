// Package mcpserver exposes the chisel operations as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all chisel tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all chisel tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "chisel",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the introspection and refactoring tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_file",
		Description: describeParse(),
	}, handleParseFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_references",
		Description: describeFindReferences(),
	}, handleFindReferences)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "symbol_info",
		Description: describeSymbolInfo(),
	}, handleSymbolInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rename_symbol",
		Description: describeRename(),
	}, handleRenameSymbol)
}
