// Package graph provides the graph database client used to read and write the
// organogram.
//
// GraphClient is the abstraction the rest of Willow depends on:
//
//   - Neo4jClient: production implementation using the Neo4j Go driver
//   - MockGraphClient: test implementation with queued or computed results
//     and a call log
//   - TracedClient: decorator emitting one OpenTelemetry span per call
//
// # Usage
//
//	cfg := graph.DefaultConfig()
//	cfg.Password = os.Getenv("WILLOW_NEO4J_PASSWORD")
//
//	client, err := graph.NewNeo4jClient(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	result, err := client.Query(ctx,
//	    "MATCH (t:Task {name: $name}) RETURN properties(t) AS task",
//	    map[string]any{"name": "Faker Integration"},
//	)
//
// # Sessions
//
// Query runs in a read transaction and Execute in a write transaction. Each
// call opens its own session and closes it before returning, on success and
// on error, so callers never hold a session between calls. The driver pool
// itself lives until Close.
//
// # Errors
//
// All errors are *types.WillowError values with GRAPH_* codes. Transport
// failures (GRAPH_CONNECTION_LOST, GRAPH_CONNECTION_FAILED after retries) are
// marked retryable; authentication failures (GRAPH_UNAUTHORIZED) are not.
package graph
