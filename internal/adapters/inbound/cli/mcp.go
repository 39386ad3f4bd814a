package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/prlens/prlens/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the PRLens MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start PRLens MCP server (stdio)",
		Long:  "Start the PRLens MCP server using stdio transport. This allows AI coding assistants to request change analysis and per-file findings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			s := mcpadapter.NewPRLensMCPServer(projectPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
