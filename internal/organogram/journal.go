package organogram

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Pass-The-Butter/willow/internal/contextkeys"
	"github.com/Pass-The-Butter/willow/internal/graph"
	"github.com/Pass-The-Butter/willow/internal/types"
)

const logWorkQuery = `
MATCH (:Domain {name: $domain})-[:HAS_COMPONENT]->(:Component {name: $component})-[:HAS_TASK]->(t:Task {name: $task})
WITH t LIMIT 1
CREATE (e:DiaryEntry {id: $id, agent: $agent, timestamp: $timestamp, status: $status, notes: $notes})
CREATE (t)-[:HAS_DIARY_ENTRY]->(e)
RETURN e.id AS id
`

const markCompleteQuery = `
MATCH (:Domain {name: $domain})-[:HAS_COMPONENT]->(:Component {name: $component})-[:HAS_TASK]->(t:Task {name: $task})
SET t.status = $status,
    t.completed_at = $completed_at
RETURN t.name AS name
`

// Journal records agent work against tasks addressed by their full path.
type Journal struct {
	client   graph.GraphClient
	settings settings
}

// NewJournal creates a Journal writing through client.
func NewJournal(client graph.GraphClient, opts ...Option) *Journal {
	return &Journal{
		client:   client,
		settings: newSettings(opts),
	}
}

// LogWork appends a diary entry to the task at path.
// Agent defaults to the configured agent name and Status to "In Progress".
func (j *Journal) LogWork(ctx context.Context, path string, entry WorkLog) (*DiaryEntry, error) {
	tp, err := ParseTaskPath(path)
	if err != nil {
		return nil, err
	}
	ctx = contextkeys.WithTaskPath(ctx, path)

	notes := strings.TrimSpace(entry.Notes)
	if notes == "" {
		return nil, types.NewError(ErrCodeInvalidInput, "notes cannot be empty")
	}

	agent := strings.TrimSpace(entry.Agent)
	if agent == "" {
		agent = j.settings.agentName
	}
	status := strings.TrimSpace(entry.Status)
	if status == "" {
		status = StatusInProgress
	}

	now := j.settings.now().UTC()
	diary := &DiaryEntry{
		ID:        uuid.New().String(),
		TaskPath:  tp.String(),
		Agent:     agent,
		Status:    status,
		Notes:     notes,
		Timestamp: now.Format(time.RFC3339),
	}

	params := map[string]any{
		"domain":    tp.Domain,
		"component": tp.Component,
		"task":      tp.Task,
		"id":        diary.ID,
		"agent":     diary.Agent,
		"timestamp": now,
		"status":    diary.Status,
		"notes":     diary.Notes,
	}

	result, err := j.client.Execute(ctx, logWorkQuery, params)
	if err != nil {
		return nil, storeError("log_work", err)
	}
	if len(result.Records) == 0 {
		return nil, &NotFoundError{Segment: SegmentTask, Name: tp.Task}
	}

	j.settings.logger.InfoContext(ctx, "logged work",
		slog.String("entry_id", diary.ID),
		slog.String("agent", diary.Agent),
		slog.String("status", diary.Status))

	return diary, nil
}

// MarkComplete sets the task at path to "Complete" and stamps completed_at.
func (j *Journal) MarkComplete(ctx context.Context, path string) error {
	tp, err := ParseTaskPath(path)
	if err != nil {
		return err
	}
	ctx = contextkeys.WithTaskPath(ctx, path)

	params := map[string]any{
		"domain":       tp.Domain,
		"component":    tp.Component,
		"task":         tp.Task,
		"status":       StatusComplete,
		"completed_at": j.settings.now().UTC(),
	}

	result, err := j.client.Execute(ctx, markCompleteQuery, params)
	if err != nil {
		return storeError("mark_complete", err)
	}
	if len(result.Records) == 0 {
		return &NotFoundError{Segment: SegmentTask, Name: tp.Task}
	}

	j.settings.logger.InfoContext(ctx, "task marked complete")
	return nil
}
