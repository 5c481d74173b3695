//go:build integration

package organogram_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Pass-The-Butter/willow/internal/graph"
	"github.com/Pass-The-Butter/willow/internal/organogram"
	"github.com/Pass-The-Butter/willow/internal/organogram/backup"
	"github.com/Pass-The-Butter/willow/internal/organogram/deploy"
)

// setupNeo4j starts a Neo4j container, connects a client and loads the seed script.
func setupNeo4j(t *testing.T, ctx context.Context) graph.GraphClient {
	t.Helper()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		t.Skip("Docker not available, skipping integration test")
	}
	if err := provider.Health(ctx); err != nil {
		t.Skip("Docker not running, skipping integration test")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "neo4j:5",
			ExposedPorts: []string{"7687/tcp"},
			Env:          map[string]string{"NEO4J_AUTH": "none"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("7687/tcp"),
				wait.ForLog("Started."),
			).WithDeadline(120 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Neo4j container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "7687")
	require.NoError(t, err)

	cfg := graph.DefaultConfig()
	cfg.URI = fmt.Sprintf("bolt://%s:%s", host, port.Port())
	// Auth is disabled in the container; the client still requires credentials.
	cfg.Password = "ignored"

	client, err := graph.NewNeo4jClient(cfg)
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	t.Cleanup(func() { _ = client.Close(context.Background()) })
	require.True(t, client.Health(ctx).IsHealthy())

	result, err := deploy.NewDeployer(client, nil).ApplyFile(ctx, filepath.Join("..", "..", "schemas", "organogram.cypher"))
	require.NoError(t, err)
	require.Zero(t, result.Failed)

	return client
}

func TestIntegration_Organogram(t *testing.T) {
	ctx := context.Background()
	client := setupNeo4j(t, ctx)

	const faker = "Population → Generator → Faker Integration"

	t.Run("context bundle", func(t *testing.T) {
		bundle, err := organogram.NewAssembler(client).GetContext(ctx, faker)
		require.NoError(t, err)

		assert.Equal(t, faker, bundle.TaskPath)
		assert.Equal(t, "Faker", bundle.Specification.String("framework"))
		assert.Equal(t, []string{"Schema Design"}, bundle.Summary.BlockedBy)
		assert.True(t, bundle.Summary.HasDependencies)
		assert.Zero(t, bundle.Summary.RecentActivity)
	})

	t.Run("missing segment", func(t *testing.T) {
		_, err := organogram.NewAssembler(client).GetContext(ctx, "Population → Generator → Nope")
		var nf *organogram.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, organogram.SegmentTask, nf.Segment)
	})

	t.Run("journal then context", func(t *testing.T) {
		journal := organogram.NewJournal(client)
		entry, err := journal.LogWork(ctx, faker, organogram.WorkLog{Notes: "wired the seeded generator"})
		require.NoError(t, err)

		bundle, err := organogram.NewAssembler(client).GetContext(ctx, faker)
		require.NoError(t, err)
		require.Len(t, bundle.DiaryEntries, 1)
		assert.Equal(t, entry.ID, bundle.DiaryEntries[0].String("id"))
		assert.Equal(t, 1, bundle.Summary.RecentActivity)
	})

	t.Run("status report", func(t *testing.T) {
		report, err := organogram.NewOverview(client).Report(ctx)
		require.NoError(t, err)

		require.Len(t, report.Domains, 2)
		assert.Equal(t, "Interface", report.Domains[0].Domain)
		assert.Equal(t, 2, report.Domains[1].Total)
		assert.Equal(t, []string{"Interface → Dashboard → Progress Widget"}, report.ReadyTasks)
		require.Len(t, report.RFCs, 1)
		assert.Equal(t, "RFC-001", report.RFCs[0].ID)
	})

	t.Run("complete unblocks dependents", func(t *testing.T) {
		journal := organogram.NewJournal(client)
		require.NoError(t, journal.MarkComplete(ctx, "Population → Generator → Schema Design"))

		bundle, err := organogram.NewAssembler(client).GetContext(ctx, faker)
		require.NoError(t, err)
		assert.Empty(t, bundle.Summary.BlockedBy)
	})

	t.Run("inventory and snapshot", func(t *testing.T) {
		counts, err := organogram.NewOverview(client).Inventory(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts[organogram.LabelTask])
		assert.Equal(t, int64(1), counts[organogram.LabelDiaryEntry])

		manifest, err := backup.NewExporter(client, nil).Snapshot(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 11, manifest.Nodes)
		assert.Equal(t, 10, manifest.Relationships)
	})
}
