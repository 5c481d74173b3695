// Package mcptools exposes organogram operations as MCP tools.
//
// Each tool is a struct holding its dependency, with Definition() returning
// the mcp.Tool schema and Handle() serving the call. Domain failures are
// returned as tool error results so the calling agent can read them; the
// Go error return is reserved for transport problems.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Pass-The-Butter/willow/internal/organogram"
)

// ContextProvider assembles task-scoped context bundles.
type ContextProvider interface {
	GetContext(ctx context.Context, path string) (*organogram.ContextBundle, error)
}

// WorkRecorder writes to a task's journal.
type WorkRecorder interface {
	LogWork(ctx context.Context, path string, entry organogram.WorkLog) (*organogram.DiaryEntry, error)
	MarkComplete(ctx context.Context, path string) error
}

// StatusReporter produces the project-wide overview.
type StatusReporter interface {
	Report(ctx context.Context) (*organogram.StatusReport, error)
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult turns a domain error into a message an agent can act on.
func errorResult(err error) *mcp.CallToolResult {
	var (
		pathErr *organogram.InvalidPathError
		nf      *organogram.NotFoundError
	)
	switch {
	case errors.As(err, &pathErr):
		return mcp.NewToolResultError(pathErr.Error())
	case errors.As(err, &nf):
		return mcp.NewToolResultError(fmt.Sprintf("%s; check the path with project_status", nf.Error()))
	case errors.Is(err, organogram.ErrStoreUnavailable):
		return mcp.NewToolResultError(fmt.Sprintf("graph store unavailable, retry later: %v", err))
	default:
		return mcp.NewToolResultError(err.Error())
	}
}
