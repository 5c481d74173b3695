package organogram

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/Pass-The-Butter/willow/internal/contextkeys"
	"github.com/Pass-The-Butter/willow/internal/graph"
)

// contextQuery resolves the path one segment at a time with OPTIONAL MATCH so
// that a missing segment still yields a row naming what was found.
const contextQuery = `
OPTIONAL MATCH (d:Domain {name: $domain})
WITH d LIMIT 1
OPTIONAL MATCH (d)-[:HAS_COMPONENT]->(c:Component {name: $component})
WITH d, c LIMIT 1
OPTIONAL MATCH (c)-[:HAS_TASK]->(t:Task {name: $task})
WITH d, c, t LIMIT 1
OPTIONAL MATCH (t)-[:REQUIRES]->(spec:Specification)
WITH d, c, t, head(collect(spec)) AS spec
OPTIONAL MATCH (t)-[:MUST_SATISFY]->(criteria:TestCriteria)
WITH d, c, t, spec, head(collect(criteria)) AS criteria
OPTIONAL MATCH (t)-[:DEPENDS_ON]->(dep:Task)
WITH d, c, t, spec, criteria, collect(DISTINCT dep) AS deps
OPTIONAL MATCH (t)-[:HAS_DIARY_ENTRY]->(entry:DiaryEntry)
WHERE entry.timestamp > $since
WITH d, c, t, spec, criteria, deps, collect(DISTINCT entry) AS entries
OPTIONAL MATCH (t)<-[:TARGETS]-(msg:Message {status: $unread})
WITH d, c, t, spec, criteria, deps, entries, collect(DISTINCT msg) AS msgs
OPTIONAL MATCH (c)-[:HAS_RFC]->(rfc:RFC {status: $open})
WITH d, c, t, spec, criteria, deps, entries, msgs, collect(DISTINCT rfc) AS rfcs
RETURN properties(d) AS domain,
       properties(c) AS component,
       properties(t) AS task,
       properties(spec) AS specification,
       properties(criteria) AS acceptance_criteria,
       [x IN deps | properties(x)] AS dependencies,
       [x IN entries | properties(x)] AS diary_entries,
       [x IN msgs | properties(x)] AS messages,
       [x IN rfcs | properties(x)] AS rfcs
`

// Assembler builds task-scoped context bundles. It holds no mutable state and
// is safe for concurrent use.
type Assembler struct {
	client   graph.GraphClient
	settings settings
}

// NewAssembler creates an Assembler reading from client.
func NewAssembler(client graph.GraphClient, opts ...Option) *Assembler {
	return &Assembler{
		client:   client,
		settings: newSettings(opts),
	}
}

// GetContext returns everything an agent needs to work on the task at path.
// The returned bundle echoes path unchanged in TaskPath.
func (a *Assembler) GetContext(ctx context.Context, path string) (*ContextBundle, error) {
	tp, err := ParseTaskPath(path)
	if err != nil {
		return nil, err
	}
	ctx = contextkeys.WithTaskPath(ctx, path)

	since := a.settings.now().Add(-a.settings.diaryWindow)
	params := map[string]any{
		"domain":    tp.Domain,
		"component": tp.Component,
		"task":      tp.Task,
		"since":     since,
		"unread":    MessageUnread,
		"open":      RFCOpen,
	}

	result, err := a.client.Query(ctx, contextQuery, params)
	if err != nil {
		a.settings.logger.WarnContext(ctx, "context query failed",
			slog.String("error", err.Error()))
		return nil, storeError("get_context", err)
	}

	if len(result.Records) == 0 {
		return nil, &NotFoundError{Segment: SegmentDomain, Name: tp.Domain}
	}
	record := result.Records[0]

	domain := asProperties(record["domain"])
	if domain == nil {
		return nil, &NotFoundError{Segment: SegmentDomain, Name: tp.Domain}
	}
	component := asProperties(record["component"])
	if component == nil {
		return nil, &NotFoundError{Segment: SegmentComponent, Name: tp.Component}
	}
	task := asProperties(record["task"])
	if task == nil {
		return nil, &NotFoundError{Segment: SegmentTask, Name: tp.Task}
	}

	bundle := &ContextBundle{
		TaskPath:           path,
		Domain:             domain,
		Component:          component,
		Task:               task,
		Specification:      asProperties(record["specification"]),
		AcceptanceCriteria: asProperties(record["acceptance_criteria"]),
		Dependencies:       asPropertiesList(record["dependencies"]),
		DiaryEntries:       recentEntries(asPropertiesList(record["diary_entries"]), since),
		Messages:           asPropertiesList(record["messages"]),
		RFCs:               asPropertiesList(record["rfcs"]),
	}
	sortByName(bundle.Dependencies)
	bundle.Summary = Summarize(task, bundle.Dependencies, bundle.DiaryEntries, bundle.Messages, bundle.RFCs)

	a.settings.logger.DebugContext(ctx, "assembled task context",
		slog.Int("dependencies", len(bundle.Dependencies)),
		slog.Int("blocked_by", len(bundle.Summary.BlockedBy)),
		slog.Int("diary_entries", len(bundle.DiaryEntries)),
		slog.Int("messages", len(bundle.Messages)),
		slog.Int("rfcs", len(bundle.RFCs)))

	return bundle, nil
}

// recentEntries keeps entries stamped strictly after since, newest first.
// Entries without a readable timestamp are dropped, matching the query filter.
func recentEntries(entries []Properties, since time.Time) []Properties {
	type stamped struct {
		at    time.Time
		props Properties
	}

	kept := make([]stamped, 0, len(entries))
	for _, e := range entries {
		at, ok := e.Time("timestamp")
		if !ok || !at.After(since) {
			continue
		}
		kept = append(kept, stamped{at: at, props: e})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].at.After(kept[j].at)
	})

	out := make([]Properties, len(kept))
	for i, k := range kept {
		out[i] = k.props
	}
	return out
}

// sortByName gives collected lists a stable order so repeated calls compare equal.
func sortByName(list []Properties) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
}
