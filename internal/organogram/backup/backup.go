// Package backup exports the whole graph as JSON Lines snapshots.
package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Pass-The-Butter/willow/internal/graph"
	"github.com/Pass-The-Butter/willow/internal/organogram"
	"github.com/Pass-The-Butter/willow/internal/types"
)

// File names inside a snapshot directory.
const (
	NodesFile         = "nodes.jsonl"
	RelationshipsFile = "relationships.jsonl"
	ManifestFile      = "manifest.json"
)

const snapshotLayout = "20060102_150405"

const nodesQuery = `
MATCH (n)
RETURN elementId(n) AS id, labels(n) AS labels, properties(n) AS properties
ORDER BY id
`

const relationshipsQuery = `
MATCH (a)-[r]->(b)
RETURN elementId(a) AS start_node, elementId(b) AS end_node, type(r) AS type, properties(r) AS properties
ORDER BY start_node, end_node, type
`

// NodeRecord is one line of nodes.jsonl.
type NodeRecord struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// RelationshipRecord is one line of relationships.jsonl.
type RelationshipRecord struct {
	StartNode  string         `json:"start_node"`
	EndNode    string         `json:"end_node"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Manifest describes a finished snapshot.
type Manifest struct {
	Path          string    `json:"path"`
	CreatedAt     time.Time `json:"created_at"`
	Nodes         int       `json:"nodes"`
	Relationships int       `json:"relationships"`
}

// Exporter writes graph snapshots to disk.
type Exporter struct {
	client graph.GraphClient
	now    func() time.Time
	logger *slog.Logger
}

// NewExporter creates an Exporter. A nil logger uses slog.Default().
func NewExporter(client graph.GraphClient, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{client: client, now: time.Now, logger: logger}
}

// WithClock overrides the clock used to name snapshots.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Snapshot exports every node and relationship into dir/snapshot_YYYYMMDD_HHMMSS.
// Temporal property values are written as RFC 3339 strings. On failure the
// partial snapshot directory is removed, so only complete snapshots carry a manifest.
func (e *Exporter) Snapshot(ctx context.Context, dir string) (_ *Manifest, err error) {
	createdAt := e.now()
	path := filepath.Join(dir, "snapshot_"+createdAt.Format(snapshotLayout))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, types.WrapError(types.IO_WRITE_FAILED, fmt.Sprintf("failed to create %s", dir), err)
	}
	// An existing snapshot directory is an error; it is never reused or removed.
	if err := os.Mkdir(path, 0o755); err != nil {
		return nil, types.WrapError(types.IO_WRITE_FAILED, fmt.Sprintf("failed to create %s", path), err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.RemoveAll(path); rmErr != nil {
			e.logger.WarnContext(ctx, "failed to remove partial snapshot",
				slog.String("path", path),
				slog.String("error", rmErr.Error()))
		}
	}()

	nodes, err := e.client.Query(ctx, nodesQuery, nil)
	if err != nil {
		return nil, &organogram.StoreUnavailableError{Op: "backup_nodes", Err: err}
	}
	nodeCount, err := writeJSONL(filepath.Join(path, NodesFile), nodes.Records, toNodeRecord)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(ctx, "exported nodes", slog.Int("count", nodeCount))

	rels, err := e.client.Query(ctx, relationshipsQuery, nil)
	if err != nil {
		return nil, &organogram.StoreUnavailableError{Op: "backup_relationships", Err: err}
	}
	relCount, err := writeJSONL(filepath.Join(path, RelationshipsFile), rels.Records, toRelationshipRecord)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(ctx, "exported relationships", slog.Int("count", relCount))

	manifest := &Manifest{
		Path:          path,
		CreatedAt:     createdAt.UTC(),
		Nodes:         nodeCount,
		Relationships: relCount,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, types.WrapError(types.IO_WRITE_FAILED, "failed to encode manifest", err)
	}
	if err := os.WriteFile(filepath.Join(path, ManifestFile), data, 0o644); err != nil {
		return nil, types.WrapError(types.IO_WRITE_FAILED, "failed to write manifest", err)
	}

	e.logger.InfoContext(ctx, "backup complete", slog.String("path", path))
	return manifest, nil
}

func writeJSONL(path string, records []map[string]any, convert func(map[string]any) any) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, types.WrapError(types.IO_WRITE_FAILED, fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(convert(rec)); err != nil {
			return 0, types.WrapError(types.IO_WRITE_FAILED, fmt.Sprintf("failed to encode record in %s", path), err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, types.WrapError(types.IO_WRITE_FAILED, fmt.Sprintf("failed to write %s", path), err)
	}
	if err := f.Close(); err != nil {
		return 0, types.WrapError(types.IO_WRITE_FAILED, fmt.Sprintf("failed to close %s", path), err)
	}
	return len(records), nil
}

func toNodeRecord(rec map[string]any) any {
	return NodeRecord{
		ID:         fmt.Sprint(rec["id"]),
		Labels:     stringList(rec["labels"]),
		Properties: exportProperties(rec["properties"]),
	}
}

func toRelationshipRecord(rec map[string]any) any {
	return RelationshipRecord{
		StartNode:  fmt.Sprint(rec["start_node"]),
		EndNode:    fmt.Sprint(rec["end_node"]),
		Type:       fmt.Sprint(rec["type"]),
		Properties: exportProperties(rec["properties"]),
	}
}

// exportProperties normalizes driver values and renders times as RFC 3339.
func exportProperties(v any) map[string]any {
	props, _ := v.(map[string]any)
	out := make(map[string]any, len(props))
	for k, val := range organogram.NormalizeProperties(props) {
		out[k] = rfc3339(val)
	}
	return out
}

func rfc3339(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = rfc3339(item)
		}
		return out
	case organogram.Properties:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = rfc3339(item)
		}
		return out
	default:
		return v
	}
}

func stringList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{}
	}
}
