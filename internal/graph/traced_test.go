package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedMock(t *testing.T) (*TracedClient, *MockGraphClient, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	mock := NewMockGraphClient()
	client := NewTracedClient(mock, tp.Tracer("willow.graph.test"))
	require.NoError(t, client.Connect(context.Background()))
	return client, mock, recorder
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestTracedClient_QuerySpan(t *testing.T) {
	client, mock, recorder := newTracedMock(t)
	mock.AddQueryResult(QueryResult{Records: []map[string]any{{"a": 1}, {"a": 2}}})

	result, err := client.Query(context.Background(), "MATCH (t:Task)\n  RETURN t", map[string]any{"secret": "notes"})
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, SpanGraphConnect, spans[0].Name())

	span := spans[1]
	assert.Equal(t, SpanGraphQuery, span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	attrs := attrMap(span)
	assert.Equal(t, "neo4j", attrs["db.system"].AsString())
	assert.Equal(t, "read", attrs["db.operation"].AsString())
	assert.Equal(t, "MATCH (t:Task) RETURN t", attrs["db.statement"].AsString())
	assert.Equal(t, int64(1), attrs["willow.graph.param_count"].AsInt64())
	assert.Equal(t, int64(2), attrs["willow.graph.record_count"].AsInt64())
	for _, v := range attrs {
		assert.NotEqual(t, "notes", v.Emit())
	}
}

func TestTracedClient_ExecuteErrorSpan(t *testing.T) {
	client, mock, recorder := newTracedMock(t)
	mock.SetExecuteError(assert.AnError)

	_, err := client.Execute(context.Background(), "CREATE (n)", nil)
	require.ErrorIs(t, err, assert.AnError)

	spans := recorder.Ended()
	span := spans[len(spans)-1]
	assert.Equal(t, SpanGraphExecute, span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "write", attrMap(span)["db.operation"].AsString())
	assert.NotEmpty(t, span.Events(), "error should be recorded as an event")
}

func TestTruncateStatement(t *testing.T) {
	long := "MATCH " + strings.Repeat("(n)-->", 100) + "(m) RETURN m"
	got := truncateStatement(long)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, maxStatementAttrLen+3)
}
