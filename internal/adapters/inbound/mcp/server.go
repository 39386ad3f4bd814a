package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPRLensMCPServer creates a new MCP server with all PRLens tools
// registered. The projectPath is the root directory of the project to
// analyze.
func NewPRLensMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"prlens",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
