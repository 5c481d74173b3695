package graph

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Pass-The-Butter/willow/internal/types"
)

const (
	connectMaxRetries = 5
	connectBaseDelay  = 100 * time.Millisecond

	unauthorizedCode = "Neo.ClientError.Security.Unauthorized"
)

// Neo4jClient implements GraphClient for Neo4j graph databases.
// The driver owns the connection pool; each call borrows a session and
// returns it before the call completes.
type Neo4jClient struct {
	config GraphClientConfig
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect establishes a connection to the Neo4j database.
// Uses exponential backoff for connection retries. Authentication failures are not retried.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

	driverConfig := func(config *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
	}

	var lastErr error
	for attempt := 0; attempt < connectMaxRetries; attempt++ {
		driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, driverConfig)
		if err != nil {
			// A malformed URI will not get better with time.
			return types.WrapError(ErrCodeGraphInvalidConfig, "failed to create driver", err)
		}

		err = driver.VerifyConnectivity(ctx)
		if err == nil {
			c.driver = driver
			return nil
		}
		_ = driver.Close(ctx)

		if isUnauthorized(err) {
			return types.WrapError(ErrCodeGraphUnauthorized, "authentication rejected", err)
		}
		lastErr = err

		if ctx.Err() != nil {
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}

		delay := connectBaseDelay * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.config.ConnectionTimeout {
			delay = c.config.ConnectionTimeout
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
	}

	return types.WrapRetryableError(ErrCodeGraphConnectionFailed,
		fmt.Sprintf("failed to connect after %d attempts", connectMaxRetries), lastErr)
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}

	if err := c.driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed,
			"failed to close driver", err)
	}

	c.driver = nil
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	if c.driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to Neo4j")
}

// Query executes a Cypher query in a read transaction.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	result, err := c.run(ctx, neo4j.AccessModeRead, cypher, params)
	if err != nil {
		return QueryResult{}, classify(ErrCodeGraphQueryFailed, "query execution failed", err)
	}
	return result, nil
}

// Execute runs a Cypher statement in a write transaction.
func (c *Neo4jClient) Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	result, err := c.run(ctx, neo4j.AccessModeWrite, cypher, params)
	if err != nil {
		return QueryResult{}, classify(ErrCodeGraphWriteFailed, "write execution failed", err)
	}
	return result, nil
}

func (c *Neo4jClient) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) (QueryResult, error) {
	if c.driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "driver not connected")
	}

	startTime := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(records, summary), nil
	}

	var (
		raw any
		err error
	)
	if mode == neo4j.AccessModeWrite {
		raw, err = session.ExecuteWrite(ctx, work)
	} else {
		raw, err = session.ExecuteRead(ctx, work)
	}
	if err != nil {
		return QueryResult{}, err
	}

	queryResult := raw.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)
	return queryResult, nil
}

// classify wraps a driver error, marking transport failures retryable.
func classify(code types.ErrorCode, message string, err error) error {
	switch {
	case isUnauthorized(err):
		return types.WrapError(ErrCodeGraphUnauthorized, message, err)
	case neo4j.IsConnectivityError(err):
		return types.WrapRetryableError(ErrCodeGraphConnectionLost, message, err)
	default:
		return types.WrapError(code, message, err)
	}
}

func isUnauthorized(err error) bool {
	var neoErr *neo4j.Neo4jError
	return errors.As(err, &neoErr) && neoErr.Code == unauthorizedCode
}

// convertNeo4jResult converts Neo4j records and summary to our QueryResult format.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		recordMap := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		result.Records = append(result.Records, recordMap)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
		}
	}

	return result
}
