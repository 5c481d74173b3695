package organogram

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Pass-The-Butter/willow/internal/graph"
)

const domainProgressQuery = `
MATCH (d:Domain)-[:HAS_COMPONENT]->(:Component)-[:HAS_TASK]->(t:Task)
RETURN d.name AS domain,
       count(t) AS total,
       sum(CASE WHEN t.status = $complete THEN 1 ELSE 0 END) AS complete,
       sum(CASE WHEN t.status = $in_progress THEN 1 ELSE 0 END) AS in_progress,
       sum(CASE WHEN t.status = $not_started THEN 1 ELSE 0 END) AS not_started
ORDER BY domain
`

const unreadMessagesQuery = `
MATCH (m:Message {status: $unread})
RETURN m.from AS from, m.to AS to, m.subject AS subject, m.priority AS priority
ORDER BY m.timestamp DESC
LIMIT $limit
`

const openRFCsQuery = `
MATCH (r:RFC {status: $open})
RETURN r.id AS id, r.title AS title, r.priority AS priority
ORDER BY r.priority DESC
`

const readyTasksQuery = `
MATCH (d:Domain)-[:HAS_COMPONENT]->(c:Component)-[:HAS_TASK]->(t:Task {status: $not_started})
OPTIONAL MATCH (t)-[:DEPENDS_ON]->(dep:Task)
WHERE dep.status <> $complete
WITH d, c, t, count(dep) AS blockers
WHERE blockers = 0
RETURN d.name AS domain, c.name AS component, t.name AS task
ORDER BY domain, component, task
LIMIT $limit
`

// Overview answers project-wide questions for the project manager.
type Overview struct {
	client   graph.GraphClient
	settings settings
}

// NewOverview creates an Overview reading from client.
func NewOverview(client graph.GraphClient, opts ...Option) *Overview {
	return &Overview{
		client:   client,
		settings: newSettings(opts),
	}
}

// Report runs the four overview queries concurrently. The first failure
// cancels the others and fails the whole report.
func (o *Overview) Report(ctx context.Context) (*StatusReport, error) {
	report := &StatusReport{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := o.client.Query(gctx, domainProgressQuery, map[string]any{
			"complete":    StatusComplete,
			"in_progress": StatusInProgress,
			"not_started": StatusNotStarted,
		})
		if err != nil {
			return storeError("domain_progress", err)
		}
		report.Domains = make([]DomainProgress, 0, len(result.Records))
		for _, rec := range result.Records {
			p := DomainProgress{
				Domain:     stringValue(rec["domain"]),
				Total:      intValue(rec["total"]),
				Complete:   intValue(rec["complete"]),
				InProgress: intValue(rec["in_progress"]),
				NotStarted: intValue(rec["not_started"]),
			}
			if p.Total > 0 {
				p.Percent = p.Complete * 100 / p.Total
			}
			report.Domains = append(report.Domains, p)
		}
		return nil
	})

	g.Go(func() error {
		result, err := o.client.Query(gctx, unreadMessagesQuery, map[string]any{
			"unread": MessageUnread,
			"limit":  int64(o.settings.messageLimit),
		})
		if err != nil {
			return storeError("unread_messages", err)
		}
		report.Messages = make([]MessageSummary, 0, len(result.Records))
		for _, rec := range result.Records {
			report.Messages = append(report.Messages, MessageSummary{
				From:     stringValue(rec["from"]),
				To:       stringValue(rec["to"]),
				Subject:  stringValue(rec["subject"]),
				Priority: stringValue(rec["priority"]),
			})
		}
		return nil
	})

	g.Go(func() error {
		result, err := o.client.Query(gctx, openRFCsQuery, map[string]any{"open": RFCOpen})
		if err != nil {
			return storeError("open_rfcs", err)
		}
		report.RFCs = make([]RFCSummary, 0, len(result.Records))
		for _, rec := range result.Records {
			report.RFCs = append(report.RFCs, RFCSummary{
				ID:       stringValue(rec["id"]),
				Title:    stringValue(rec["title"]),
				Priority: stringValue(rec["priority"]),
			})
		}
		return nil
	})

	g.Go(func() error {
		result, err := o.client.Query(gctx, readyTasksQuery, map[string]any{
			"not_started": StatusNotStarted,
			"complete":    StatusComplete,
			"limit":       int64(o.settings.readyTaskLimit),
		})
		if err != nil {
			return storeError("ready_tasks", err)
		}
		report.ReadyTasks = make([]string, 0, len(result.Records))
		for _, rec := range result.Records {
			report.ReadyTasks = append(report.ReadyTasks, JoinPath(
				stringValue(rec["domain"]),
				stringValue(rec["component"]),
				stringValue(rec["task"]),
			))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		o.settings.logger.WarnContext(ctx, "status report failed", slog.String("error", err.Error()))
		return nil, err
	}

	o.settings.logger.DebugContext(ctx, "status report assembled",
		slog.Int("domains", len(report.Domains)),
		slog.Int("messages", len(report.Messages)),
		slog.Int("rfcs", len(report.RFCs)),
		slog.Int("ready_tasks", len(report.ReadyTasks)))

	return report, nil
}

// Inventory counts the nodes carrying each taxonomy label.
func (o *Overview) Inventory(ctx context.Context) (map[Label]int64, error) {
	counts := make(map[Label]int64, len(allLabels))
	for _, label := range Labels() {
		cypher, err := countByLabelQuery(label)
		if err != nil {
			return nil, err
		}
		result, err := o.client.Query(ctx, cypher, nil)
		if err != nil {
			return nil, storeError("inventory", err)
		}
		if len(result.Records) > 0 {
			counts[label] = int64(intValue(result.Records[0]["count"]))
		}
	}
	return counts, nil
}

// countByLabelQuery is the only place a label is spliced into Cypher text.
func countByLabelQuery(label Label) (string, error) {
	if !label.Valid() {
		return "", fmt.Errorf("label %q is not part of the organogram taxonomy", label)
	}
	return fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", label), nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func intValue(v any) int {
	switch val := v.(type) {
	case int64:
		return int(val)
	case int:
		return val
	case int32:
		return int(val)
	case float64:
		return int(val)
	default:
		return 0
	}
}
