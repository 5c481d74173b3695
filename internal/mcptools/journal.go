package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Pass-The-Butter/willow/internal/organogram"
)

// LogWorkTool handles the log_work MCP tool.
type LogWorkTool struct {
	journal WorkRecorder
}

// NewLogWorkTool creates a LogWorkTool.
func NewLogWorkTool(journal WorkRecorder) *LogWorkTool {
	return &LogWorkTool{journal: journal}
}

// Definition returns the MCP tool definition for log_work.
func (t *LogWorkTool) Definition() mcp.Tool {
	return mcp.NewTool("log_work",
		mcp.WithDescription(
			"Append a diary entry to a task describing the work just done. "+
				"Entries show up in get_task_context for 7 days.",
		),
		mcp.WithString("task_path",
			mcp.Required(),
			mcp.Description("Task path in the form 'Domain → Component → Task'"),
		),
		mcp.WithString("notes",
			mcp.Required(),
			mcp.Description("What was done, decided or found"),
		),
		mcp.WithString("status",
			mcp.Description("Status recorded on the entry (default: In Progress)"),
		),
		mcp.WithString("agent",
			mcp.Description("Name of the agent writing the entry (default: configured agent name)"),
		),
	)
}

// Handle processes the log_work tool call.
func (t *LogWorkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("task_path", "")
	if strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("'task_path' is required"), nil
	}
	notes := req.GetString("notes", "")
	if strings.TrimSpace(notes) == "" {
		return mcp.NewToolResultError("'notes' is required"), nil
	}

	entry, err := t.journal.LogWork(ctx, path, organogram.WorkLog{
		Agent:  req.GetString("agent", ""),
		Notes:  notes,
		Status: req.GetString("status", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(entry)
}

// MarkCompleteTool handles the mark_complete MCP tool.
type MarkCompleteTool struct {
	journal WorkRecorder
}

// NewMarkCompleteTool creates a MarkCompleteTool.
func NewMarkCompleteTool(journal WorkRecorder) *MarkCompleteTool {
	return &MarkCompleteTool{journal: journal}
}

// Definition returns the MCP tool definition for mark_complete.
func (t *MarkCompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("mark_complete",
		mcp.WithDescription(
			"Mark a task Complete once its acceptance criteria are satisfied. "+
				"Tasks depending on it stop listing it in blocked_by.",
		),
		mcp.WithString("task_path",
			mcp.Required(),
			mcp.Description("Task path in the form 'Domain → Component → Task'"),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle processes the mark_complete tool call.
func (t *MarkCompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("task_path", "")
	if strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("'task_path' is required"), nil
	}

	if err := t.journal.MarkComplete(ctx, path); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Task marked complete: %s", path)), nil
}
