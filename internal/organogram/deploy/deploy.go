package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Pass-The-Butter/willow/internal/graph"
	"github.com/Pass-The-Butter/willow/internal/types"
)

// Outcome records what happened to one statement.
type Outcome struct {
	Statement Statement
	Err       error
	Summary   graph.QuerySummary
}

// Result aggregates the outcomes of an Apply run.
type Result struct {
	Outcomes []Outcome
	Applied  int
	Failed   int
	// Skipped counts statements not attempted because the context ended.
	Skipped int
}

// Err joins every statement failure, or returns nil when all statements applied.
func (r *Result) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// StatementError ties a failure to the statement that caused it.
type StatementError struct {
	Statement Statement
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (line %d) %q: %v", e.Statement.Index, e.Statement.Line, e.Statement.Summary(), e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Deployer executes parsed statements against the graph store.
type Deployer struct {
	client graph.GraphClient
	logger *slog.Logger
}

// NewDeployer creates a Deployer. A nil logger uses slog.Default().
func NewDeployer(client graph.GraphClient, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{client: client, logger: logger}
}

// Apply runs each statement in its own write transaction. A failing statement
// does not stop the run; the returned error joins all failures.
func (d *Deployer) Apply(ctx context.Context, stmts []Statement) (*Result, error) {
	result := &Result{Outcomes: make([]Outcome, 0, len(stmts))}

	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			result.Skipped = len(stmts) - i
			d.logger.WarnContext(ctx, "deployment interrupted",
				slog.Int("applied", result.Applied),
				slog.Int("skipped", result.Skipped))
			return result, errors.Join(result.Err(), err)
		}

		qr, err := d.client.Execute(ctx, stmt.Text, nil)
		if err != nil {
			result.Failed++
			result.Outcomes = append(result.Outcomes, Outcome{
				Statement: stmt,
				Err:       &StatementError{Statement: stmt, Err: err},
			})
			d.logger.WarnContext(ctx, "statement failed",
				slog.Int("index", stmt.Index),
				slog.Int("line", stmt.Line),
				slog.String("statement", stmt.Summary()),
				slog.String("error", err.Error()))
			continue
		}

		result.Applied++
		result.Outcomes = append(result.Outcomes, Outcome{Statement: stmt, Summary: qr.Summary})
		d.logger.DebugContext(ctx, "statement applied",
			slog.Int("index", stmt.Index),
			slog.String("statement", stmt.Summary()),
			slog.Int("nodes_created", qr.Summary.NodesCreated),
			slog.Int("relationships_created", qr.Summary.RelationshipsCreated))
	}

	d.logger.InfoContext(ctx, "deployment finished",
		slog.Int("applied", result.Applied),
		slog.Int("failed", result.Failed))

	return result, result.Err()
}

// ApplyFile parses the script at path and applies it.
func (d *Deployer) ApplyFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.IO_READ_FAILED, fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	stmts, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return d.Apply(ctx, stmts)
}
