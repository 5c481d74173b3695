package mcptools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetTaskContextTool handles the get_task_context MCP tool.
type GetTaskContextTool struct {
	provider ContextProvider
}

// NewGetTaskContextTool creates a GetTaskContextTool.
func NewGetTaskContextTool(provider ContextProvider) *GetTaskContextTool {
	return &GetTaskContextTool{provider: provider}
}

// Definition returns the MCP tool definition for get_task_context.
func (t *GetTaskContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task_context",
		mcp.WithDescription(
			"Load the scoped context for one task in the organogram: the task, its domain and component, "+
				"specification, acceptance criteria, direct dependencies, diary entries from the last 7 days, "+
				"unread messages and open RFCs, plus a summary listing blocking dependencies. "+
				"Call this before starting work on a task.",
		),
		mcp.WithString("task_path",
			mcp.Required(),
			mcp.Description("Task path in the form 'Domain → Component → Task', e.g. 'Population → Generator → Faker Integration'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the get_task_context tool call.
func (t *GetTaskContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("task_path", "")
	if strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("'task_path' is required"), nil
	}

	bundle, err := t.provider.GetContext(ctx, path)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(bundle)
}
