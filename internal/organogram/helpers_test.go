package organogram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pass-The-Butter/willow/internal/graph"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newConnectedMock(t *testing.T) *graph.MockGraphClient {
	t.Helper()
	mock := graph.NewMockGraphClient()
	require.NoError(t, mock.Connect(context.Background()))
	return mock
}

// contextRecord builds the single row the context query returns for a fully
// resolved task. Callers override columns to simulate gaps.
func contextRecord(overrides map[string]any) map[string]any {
	record := map[string]any{
		"domain":              map[string]any{"name": "Population", "description": "Synthetic population data"},
		"component":           map[string]any{"name": "Generator"},
		"task":                map[string]any{"name": "Faker Integration", "status": "In Progress"},
		"specification":       nil,
		"acceptance_criteria": nil,
		"dependencies":        []any{},
		"diary_entries":       []any{},
		"messages":            []any{},
		"rfcs":                []any{},
	}
	for k, v := range overrides {
		record[k] = v
	}
	return record
}

func queueRecord(mock *graph.MockGraphClient, record map[string]any) {
	mock.AddQueryResult(graph.QueryResult{
		Records: []map[string]any{record},
		Columns: []string{"domain", "component", "task"},
	})
}
