package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Pass-The-Butter/willow/internal/contextkeys"
)

// tool is implemented by every handler in this package.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Dependencies are the organogram services the tools call into.
type Dependencies struct {
	Context ContextProvider
	Journal WorkRecorder
	Status  StatusReporter
}

// NewServer creates the MCP server with every tool registered.
func NewServer(deps Dependencies, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"willow",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	for _, t := range []tool{
		NewGetTaskContextTool(deps.Context),
		NewLogWorkTool(deps.Journal),
		NewMarkCompleteTool(deps.Journal),
		NewProjectStatusTool(deps.Status),
	} {
		def := t.Definition()
		s.AddTool(def, withToolName(def.Name, t.Handle))
	}

	return s
}

// withToolName tags the request context with the tool name for log correlation.
func withToolName(name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return next(contextkeys.WithTool(ctx, name), req)
	}
}

const serverInstructions = `Willow holds the project organogram (Domain → Component → Task).
Start with project_status to find ready tasks, then get_task_context for the task you pick.
Record progress with log_work and finish with mark_complete.`
