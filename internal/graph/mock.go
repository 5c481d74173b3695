package graph

import (
	"context"
	"sync"
	"time"

	"github.com/Pass-The-Butter/willow/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Cypher    string
	Params    map[string]any
	Timestamp time.Time
}

// Responder computes a result for a statement. It lets tests answer
// concurrent callers by statement content instead of call order.
type Responder func(cypher string, params map[string]any) (QueryResult, error)

// MockGraphClient is a mock implementation of GraphClient for testing.
// It provides configurable responses and tracks all method calls for verification.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	// Query and Execute share one FIFO queue, consulted when no responder is set.
	results   []QueryResult
	responder Responder

	queryError   error
	executeError error
	connectError error
	closeError   error
}

// NewMockGraphClient creates a new mock graph client for testing.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
	}
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect", "", nil)
	if m.connectError != nil {
		return m.connectError
	}

	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close", "", nil)
	if m.closeError != nil {
		return m.closeError
	}

	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health", "", nil)
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

// Query records the call and returns the next configured result.
func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.respond("Query", cypher, params, func() error { return m.queryError })
}

// Execute records the call and returns the next configured result.
func (m *MockGraphClient) Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.respond("Execute", cypher, params, func() error { return m.executeError })
}

func (m *MockGraphClient) respond(method, cypher string, params map[string]any, configured func() error) (QueryResult, error) {
	m.mu.Lock()
	m.record(method, cypher, params)

	if !m.connected {
		m.mu.Unlock()
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if err := configured(); err != nil {
		m.mu.Unlock()
		return QueryResult{}, err
	}

	if responder := m.responder; responder != nil {
		m.mu.Unlock()
		return responder(cypher, params)
	}
	defer m.mu.Unlock()

	if len(m.results) > 0 {
		result := m.results[0]
		m.results = m.results[1:]
		return result, nil
	}

	return QueryResult{
		Records: []map[string]any{},
		Columns: []string{},
	}, nil
}

// record must be called with mu held.
func (m *MockGraphClient) record(method, cypher string, params map[string]any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Cypher:    cypher,
		Params:    params,
		Timestamp: time.Now(),
	})
}

// AddQueryResult adds a single result to the queue.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

// SetResponder answers every Query and Execute through fn, bypassing the queue.
func (m *MockGraphClient) SetResponder(fn Responder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responder = fn
}

// SetHealthStatus configures what Health() should return.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// SetConnectError configures Connect() to return an error.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures Close() to return an error.
func (m *MockGraphClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetQueryError configures Query() to return an error.
func (m *MockGraphClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
}

// SetExecuteError configures Execute() to return an error.
func (m *MockGraphClient) SetExecuteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeError = err
}

// GetCalls returns all recorded method calls.
func (m *MockGraphClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// StoreCallCount returns how many Query and Execute calls reached the mock.
func (m *MockGraphClient) StoreCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, call := range m.calls {
		if call.Method == "Query" || call.Method == "Execute" {
			n++
		}
	}
	return n
}

// CallCount returns the total number of method calls.
func (m *MockGraphClient) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// IsConnected returns whether the mock is in connected state.
func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Reset clears all recorded calls and resets the mock to its initial state.
func (m *MockGraphClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	m.healthStatus = types.Healthy("mock graph client")
	m.calls = nil
	m.results = nil
	m.responder = nil
	m.queryError = nil
	m.executeError = nil
	m.connectError = nil
	m.closeError = nil
}
