// Package contextkeys defines the request-scoped values that the logging
// handler lifts onto every record, so log lines from deep inside a query can
// be tied back to the task and tool that caused them.
package contextkeys

import "context"

// Key is the type for all Willow context keys.
type Key string

const (
	// TaskPath stores the task path an operation is scoped to.
	TaskPath Key = "willow.task_path"

	// Tool stores the name of the MCP tool serving the request.
	Tool Key = "willow.tool"
)

// WithTaskPath returns a new context carrying the task path.
func WithTaskPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, TaskPath, path)
}

// GetTaskPath returns the task path from ctx, or "" if not set.
func GetTaskPath(ctx context.Context) string {
	if v, ok := ctx.Value(TaskPath).(string); ok {
		return v
	}
	return ""
}

// WithTool returns a new context carrying the MCP tool name.
func WithTool(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, Tool, name)
}

// GetTool returns the MCP tool name from ctx, or "" if not set.
func GetTool(ctx context.Context) string {
	if v, ok := ctx.Value(Tool).(string); ok {
		return v
	}
	return ""
}
