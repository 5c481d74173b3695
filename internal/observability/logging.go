package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/Pass-The-Butter/willow/internal/config"
	"github.com/Pass-The-Butter/willow/internal/contextkeys"
)

// ParseLevel maps a config level string to a slog.Level. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the handler selected by cfg.Format ("json" or "text").
func NewHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: redactAttr,
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewTracedLogger wraps handler so every record carries the agent name, the
// task path and tool from the context, and the trace and span ids of any
// recording span.
func NewTracedLogger(handler slog.Handler, agentName string) *slog.Logger {
	return slog.New(&traceHandler{inner: handler}).With(slog.String("agent", agentName))
}

// traceHandler injects request correlation at Handle time, so loggers created
// once at startup still pick up the span of each request context.
type traceHandler struct {
	inner slog.Handler
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, record slog.Record) error {
	if path := contextkeys.GetTaskPath(ctx); path != "" {
		record.AddAttrs(slog.String("task_path", path))
	}
	if tool := contextkeys.GetTool(ctx); tool != "" {
		record.AddAttrs(slog.String("tool", tool))
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, record)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{inner: h.inner.WithGroup(name)}
}

var sensitiveKeys = map[string]bool{
	"password":   true,
	"secret":     true,
	"token":      true,
	"credential": true,
	"apikey":     true,
}

// redactAttr blanks values whose key names a credential.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	normalized := strings.ToLower(strings.ReplaceAll(a.Key, "_", ""))
	if sensitiveKeys[normalized] {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}
