package graph

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pass-The-Butter/willow/internal/types"
)

func TestMockGraphClient_ConnectAndClose(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()

	assert.False(t, mock.Health(ctx).IsHealthy())

	require.NoError(t, mock.Connect(ctx))
	assert.True(t, mock.IsConnected())
	assert.True(t, mock.Health(ctx).IsHealthy())

	require.NoError(t, mock.Close(ctx))
	assert.False(t, mock.IsConnected())
	assert.Len(t, mock.GetCallsByMethod("Connect"), 1)
	assert.Len(t, mock.GetCallsByMethod("Close"), 1)
}

func TestMockGraphClient_ConnectError(t *testing.T) {
	mock := NewMockGraphClient()
	mock.SetConnectError(errors.New("refused"))

	require.Error(t, mock.Connect(context.Background()))
	assert.False(t, mock.IsConnected())
}

func TestMockGraphClient_QueueIsFIFOAcrossQueryAndExecute(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	mock.AddQueryResult(QueryResult{Records: []map[string]any{{"n": 1}}})
	mock.AddQueryResult(QueryResult{Records: []map[string]any{{"n": 2}}})

	first, err := mock.Query(ctx, "MATCH (n) RETURN n", map[string]any{"a": 1})
	require.NoError(t, err)
	second, err := mock.Execute(ctx, "CREATE (n)", nil)
	require.NoError(t, err)
	third, err := mock.Query(ctx, "RETURN 3", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Records[0]["n"])
	assert.Equal(t, 2, second.Records[0]["n"])
	assert.Empty(t, third.Records)

	assert.Equal(t, 3, mock.StoreCallCount())
	calls := mock.GetCallsByMethod("Query")
	require.Len(t, calls, 2)
	assert.Equal(t, "MATCH (n) RETURN n", calls[0].Cypher)
	assert.Equal(t, 1, calls[0].Params["a"])
}

func TestMockGraphClient_NotConnected(t *testing.T) {
	mock := NewMockGraphClient()

	_, err := mock.Query(context.Background(), "RETURN 1", nil)
	assert.Equal(t, ErrCodeGraphConnectionClosed, types.GetErrorCode(err))
	assert.Equal(t, 1, mock.StoreCallCount())
}

func TestMockGraphClient_ConfiguredErrors(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	mock.SetQueryError(errors.New("read boom"))
	mock.SetExecuteError(errors.New("write boom"))

	_, err := mock.Query(ctx, "RETURN 1", nil)
	assert.EqualError(t, err, "read boom")
	_, err = mock.Execute(ctx, "CREATE (n)", nil)
	assert.EqualError(t, err, "write boom")
}

func TestMockGraphClient_ResponderIsSafeForConcurrentCallers(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	mock.SetResponder(func(cypher string, params map[string]any) (QueryResult, error) {
		return QueryResult{Records: []map[string]any{{"echo": strings.TrimSpace(cypher)}}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := mock.Query(ctx, " RETURN 1 ", nil)
			assert.NoError(t, err)
			assert.Equal(t, "RETURN 1", result.Records[0]["echo"])
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, mock.StoreCallCount())
}

func TestMockGraphClient_Reset(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))
	mock.AddQueryResult(QueryResult{Records: []map[string]any{{"n": 1}}})
	mock.SetQueryError(errors.New("boom"))

	mock.Reset()

	assert.False(t, mock.IsConnected())
	assert.Zero(t, mock.CallCount())
	require.NoError(t, mock.Connect(ctx))
	result, err := mock.Query(ctx, "RETURN 1", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}
