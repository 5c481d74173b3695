package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ProjectStatusTool handles the project_status MCP tool.
type ProjectStatusTool struct {
	reporter StatusReporter
}

// NewProjectStatusTool creates a ProjectStatusTool.
func NewProjectStatusTool(reporter StatusReporter) *ProjectStatusTool {
	return &ProjectStatusTool{reporter: reporter}
}

// Definition returns the MCP tool definition for project_status.
func (t *ProjectStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("project_status",
		mcp.WithDescription(
			"Summarize the whole project: per-domain task progress, unread messages, "+
				"open RFCs and tasks that are ready to start (no incomplete dependencies).",
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the project_status tool call.
func (t *ProjectStatusTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.reporter.Report(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(report)
}
