package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/internal/mcptools"
	"github.com/Pass-The-Butter/willow/pkg/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the organogram tools over MCP (stdio)",
	Long: `Run an MCP server on stdin/stdout exposing get_task_context, log_work,
mark_complete and project_status. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// The command timeout applies to connecting only; the server runs until stdin closes.
	connectCtx, cancel := context.WithTimeout(ctx, appConfig.Core.Timeout)
	s, err := openServices(connectCtx, appConfig)
	cancel()
	if err != nil {
		return err
	}
	defer s.Close(context.WithoutCancel(ctx))

	mcpServer := mcptools.NewServer(mcptools.Dependencies{
		Context: s.assembler(),
		Journal: s.journal(),
		Status:  s.overview(),
	}, version.Version)

	s.logger.InfoContext(ctx, "mcp server listening on stdio", slog.String("neo4j_uri", appConfig.Neo4j.URI))
	return server.NewStdioServer(mcpServer).Listen(ctx, os.Stdin, os.Stdout)
}
