package organogram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pass-The-Butter/willow/internal/graph"
	"github.com/Pass-The-Butter/willow/internal/types"
)

func TestJournal_LogWork(t *testing.T) {
	mock := newConnectedMock(t)
	mock.AddQueryResult(graph.QueryResult{Records: []map[string]any{{"id": "ignored"}}})

	journal := NewJournal(mock, WithClock(fixedClock), WithAgentName("Data Agent"))
	entry, err := journal.LogWork(context.Background(), "Population→Generator→Faker Integration", WorkLog{
		Notes: "  wired Faker providers  ",
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(entry.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, fakerPath, entry.TaskPath)
	assert.Equal(t, "Data Agent", entry.Agent)
	assert.Equal(t, StatusInProgress, entry.Status)
	assert.Equal(t, "wired Faker providers", entry.Notes)
	assert.Equal(t, fixedNow.Format(time.RFC3339), entry.Timestamp)

	calls := mock.GetCallsByMethod("Execute")
	require.Len(t, calls, 1)
	params := calls[0].Params
	assert.Equal(t, "Population", params["domain"])
	assert.Equal(t, "Generator", params["component"])
	assert.Equal(t, "Faker Integration", params["task"])
	assert.Equal(t, entry.ID, params["id"])
	assert.Equal(t, fixedNow, params["timestamp"])
	assert.Contains(t, calls[0].Cypher, "HAS_COMPONENT", "task is addressed by its full path")
	assert.Empty(t, mock.GetCallsByMethod("Query"))
}

func TestJournal_LogWork_ExplicitAgentAndStatus(t *testing.T) {
	mock := newConnectedMock(t)
	mock.AddQueryResult(graph.QueryResult{Records: []map[string]any{{"id": "x"}}})

	entry, err := NewJournal(mock).LogWork(context.Background(), fakerPath, WorkLog{
		Agent:  "Reviewer",
		Notes:  "blocked on schema",
		Status: "Blocked",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reviewer", entry.Agent)
	assert.Equal(t, "Blocked", entry.Status)
}

func TestJournal_LogWork_Validation(t *testing.T) {
	mock := newConnectedMock(t)
	journal := NewJournal(mock)

	_, err := journal.LogWork(context.Background(), fakerPath, WorkLog{Notes: "   "})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidInput, types.GetErrorCode(err))

	_, err = journal.LogWork(context.Background(), "Population", WorkLog{Notes: "x"})
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.Equal(t, 0, mock.StoreCallCount())
}

func TestJournal_LogWork_TaskNotFound(t *testing.T) {
	mock := newConnectedMock(t)
	mock.AddQueryResult(graph.QueryResult{Records: []map[string]any{}})

	_, err := NewJournal(mock).LogWork(context.Background(), fakerPath, WorkLog{Notes: "x"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, SegmentTask, nf.Segment)
	assert.Equal(t, "Faker Integration", nf.Name)
}

func TestJournal_LogWork_StoreError(t *testing.T) {
	mock := newConnectedMock(t)
	mock.SetExecuteError(errors.New("write refused"))

	_, err := NewJournal(mock).LogWork(context.Background(), fakerPath, WorkLog{Notes: "x"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestJournal_MarkComplete(t *testing.T) {
	mock := newConnectedMock(t)
	mock.AddQueryResult(graph.QueryResult{Records: []map[string]any{{"name": "Faker Integration"}}})

	err := NewJournal(mock, WithClock(fixedClock)).MarkComplete(context.Background(), fakerPath)
	require.NoError(t, err)

	calls := mock.GetCallsByMethod("Execute")
	require.Len(t, calls, 1)
	assert.Equal(t, StatusComplete, calls[0].Params["status"])
	assert.Equal(t, fixedNow, calls[0].Params["completed_at"])
	assert.Equal(t, "Generator", calls[0].Params["component"])
}

func TestJournal_MarkComplete_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mock := newConnectedMock(t)
		err := NewJournal(mock).MarkComplete(context.Background(), fakerPath)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid path", func(t *testing.T) {
		mock := newConnectedMock(t)
		err := NewJournal(mock).MarkComplete(context.Background(), "A → B → C → D")
		assert.ErrorIs(t, err, ErrInvalidPath)
		assert.Equal(t, 0, mock.StoreCallCount())
	})

	t.Run("store unavailable", func(t *testing.T) {
		mock := graph.NewMockGraphClient()
		err := NewJournal(mock).MarkComplete(context.Background(), fakerPath)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.Equal(t, graph.ErrCodeGraphConnectionClosed, types.GetErrorCode(err))
	})
}
