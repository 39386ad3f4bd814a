// Package mcp exposes the analysis pipeline to MCP clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/prlens/prlens/internal/adapters/outbound/changes"
	"github.com/prlens/prlens/internal/adapters/outbound/checker"
	"github.com/prlens/prlens/internal/adapters/outbound/config"
	"github.com/prlens/prlens/internal/adapters/outbound/detector"
	"github.com/prlens/prlens/internal/adapters/outbound/extractor"
	"github.com/prlens/prlens/internal/application"
	"github.com/prlens/prlens/internal/domain"
)

// registerTools registers all PRLens MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. prlens_analyze
	s.AddTool(
		mcplib.NewTool("prlens_analyze",
			mcplib.WithDescription("Analyze the files changed since HEAD and return the full validated report as JSON"),
			mcplib.WithBoolean("full_tree", mcplib.Description("Analyze every source file instead of the git diff")),
		),
		handleAnalyze(projectPath),
	)

	// 2. prlens_analyze_file
	s.AddTool(
		mcplib.NewTool("prlens_analyze_file",
			mcplib.WithDescription("Analyze a single file and return its findings, structural summary, and style score"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Relative path to the file to analyze"),
			),
		),
		handleAnalyzeFile(projectPath),
	)
}

// newService builds the analysis pipeline from the project's configuration.
func newService(projectPath string) (*application.AnalyzeService, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := zap.NewNop()
	registry := domain.Registry{
		domain.LangPython: {
			Extractor: extractor.NewPython(cfg.MaxFileBytes),
			Checker:   checker.NewPython(cfg),
		},
		domain.LangTypeScript: {
			Extractor: extractor.NewTypeScript(cfg.MaxFileBytes),
			Checker:   checker.NewESLint(cfg.Lint, log),
		},
	}

	return application.NewAnalyzeService(detector.New(), registry, cfg, log)
}

func handleAnalyze(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := newService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		fullTree, _ := request.GetArguments()["full_tree"].(bool)

		git := changes.NewGitSource()
		var source domain.ChangeSource = git
		if fullTree || !git.IsGitRepo(projectPath) {
			source = changes.NewDirSource()
		}

		changeSet, err := source.Changes(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("collecting changes: %v", err)), nil
		}

		report, err := svc.Analyze(ctx, changeSet)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		if hash, herr := git.CommitHash(projectPath); herr == nil {
			report.CommitHash = hash
		}
		return jsonResult(report)
	}
}

func handleAnalyzeFile(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		content, err := os.ReadFile(filepath.Join(projectPath, file))
		if err != nil {
			return errorResult(fmt.Sprintf("reading file: %v", err)), nil
		}

		svc, err := newService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.Analyze(ctx, []domain.FileChange{{Path: file, Content: string(content)}})
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(report.Files[0])
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
