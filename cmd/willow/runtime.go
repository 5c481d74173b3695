package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/config"
	"github.com/Pass-The-Butter/willow/internal/graph"
	"github.com/Pass-The-Butter/willow/internal/observability"
	"github.com/Pass-The-Butter/willow/internal/organogram"
)

const tracerName = "github.com/Pass-The-Butter/willow/internal/graph"

// services bundles the connected graph client and everything built on it for one command.
type services struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   graph.GraphClient
	provider *sdktrace.TracerProvider
}

// graphConfig translates the neo4j config section into graph client settings.
func graphConfig(cfg config.Neo4jConfig) graph.GraphClientConfig {
	return graph.GraphClientConfig{
		URI:                     cfg.URI,
		Username:                cfg.Username,
		Password:                cfg.Password,
		Database:                cfg.Database,
		MaxConnectionPoolSize:   cfg.MaxConnections,
		ConnectionTimeout:       cfg.ConnectionTimeout,
		MaxTransactionRetryTime: cfg.MaxRetryTime,
	}
}

// newLogger writes structured logs to stderr so stdout stays parseable.
func newLogger(cfg *config.Config) *slog.Logger {
	handler := observability.NewHandler(os.Stderr, cfg.Logging)
	return observability.NewTracedLogger(handler, cfg.Core.AgentName)
}

// openServices sets up logging and tracing, then connects to Neo4j.
// The caller must Close the returned services.
func openServices(ctx context.Context, cfg *config.Config) (*services, error) {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	provider, err := observability.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}

	neo, err := graph.NewNeo4jClient(graphConfig(cfg.Neo4j))
	if err != nil {
		_ = observability.ShutdownTracing(ctx, provider)
		return nil, internal.WrapError(internal.ExitConfigError, "invalid neo4j settings", err)
	}
	client := graph.NewTracedClient(neo, provider.Tracer(tracerName))

	logger.DebugContext(ctx, "connecting to graph store", slog.String("uri", cfg.Neo4j.URI))
	if err := client.Connect(ctx); err != nil {
		_ = observability.ShutdownTracing(ctx, provider)
		return nil, internal.WrapError(internal.ExitDatabaseError, "cannot reach graph store at "+cfg.Neo4j.URI, err)
	}

	return &services{cfg: cfg, logger: logger, client: client, provider: provider}, nil
}

// Close releases the driver and flushes pending spans.
func (s *services) Close(ctx context.Context) {
	if err := s.client.Close(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to close graph client", slog.String("error", err.Error()))
	}
	if err := observability.ShutdownTracing(ctx, s.provider); err != nil {
		s.logger.WarnContext(ctx, "failed to flush traces", slog.String("error", err.Error()))
	}
}

func (s *services) options() []organogram.Option {
	return []organogram.Option{
		organogram.WithLogger(s.logger),
		organogram.WithDiaryWindow(s.cfg.Context.DiaryWindow),
		organogram.WithMessageLimit(s.cfg.Context.MessageLimit),
		organogram.WithReadyTaskLimit(s.cfg.Context.ReadyTaskLimit),
		organogram.WithAgentName(s.cfg.Core.AgentName),
	}
}

func (s *services) assembler() *organogram.Assembler {
	return organogram.NewAssembler(s.client, s.options()...)
}

func (s *services) journal() *organogram.Journal {
	return organogram.NewJournal(s.client, s.options()...)
}

func (s *services) overview() *organogram.Overview {
	return organogram.NewOverview(s.client, s.options()...)
}

// withServices runs fn with connected services under the configured command timeout.
func withServices(ctx context.Context, fn func(ctx context.Context, s *services) error) error {
	ctx, cancel := context.WithTimeout(ctx, appConfig.Core.Timeout)
	defer cancel()

	s, err := openServices(ctx, appConfig)
	if err != nil {
		return err
	}
	defer s.Close(context.WithoutCancel(ctx))

	return fn(ctx, s)
}

func formatter(cmd *cobra.Command) internal.Formatter {
	return internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())
}
