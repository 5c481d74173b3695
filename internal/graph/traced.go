package graph

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Pass-The-Butter/willow/internal/types"
)

// Span names emitted by TracedClient.
const (
	SpanGraphConnect = "willow.graph.connect"
	SpanGraphQuery   = "willow.graph.query"
	SpanGraphExecute = "willow.graph.execute"
)

const maxStatementAttrLen = 256

// TracedClient wraps a GraphClient with OpenTelemetry tracing.
// Safe for concurrent access when the inner client is.
type TracedClient struct {
	inner  GraphClient
	tracer trace.Tracer
}

// NewTracedClient wraps inner so every call produces a span from tracer.
func NewTracedClient(inner GraphClient, tracer trace.Tracer) *TracedClient {
	return &TracedClient{inner: inner, tracer: tracer}
}

func (c *TracedClient) Connect(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, SpanGraphConnect, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("db.system", "neo4j"))
	err := c.inner.Connect(ctx)
	finish(span, err)
	return err
}

func (c *TracedClient) Close(ctx context.Context) error {
	return c.inner.Close(ctx)
}

func (c *TracedClient) Health(ctx context.Context) types.HealthStatus {
	return c.inner.Health(ctx)
}

func (c *TracedClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.traced(ctx, SpanGraphQuery, "read", cypher, params, c.inner.Query)
}

func (c *TracedClient) Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.traced(ctx, SpanGraphExecute, "write", cypher, params, c.inner.Execute)
}

type runFunc func(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

func (c *TracedClient) traced(ctx context.Context, name, mode, cypher string, params map[string]any, run runFunc) (QueryResult, error) {
	ctx, span := c.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	// Parameter values may hold task notes; only the statement text and the count are recorded.
	span.SetAttributes(
		attribute.String("db.system", "neo4j"),
		attribute.String("db.operation", mode),
		attribute.String("db.statement", truncateStatement(cypher)),
		attribute.Int("willow.graph.param_count", len(params)),
	)

	startTime := time.Now()
	result, err := run(ctx, cypher, params)
	span.SetAttributes(attribute.Float64("willow.graph.duration_ms", float64(time.Since(startTime).Milliseconds())))

	if err == nil {
		span.SetAttributes(attribute.Int("willow.graph.record_count", len(result.Records)))
	}
	finish(span, err)
	return result, err
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := types.GetErrorCode(err); code != "" {
			span.SetAttributes(attribute.String("error.code", string(code)))
		}
		return
	}
	span.SetStatus(codes.Ok, "")
}

func truncateStatement(cypher string) string {
	s := strings.Join(strings.Fields(cypher), " ")
	if len(s) > maxStatementAttrLen {
		return s[:maxStatementAttrLen] + "..."
	}
	return s
}
