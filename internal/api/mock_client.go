package api

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of PipelineClient for testing.
// RedactFunc/QueryFunc take precedence over the canned values.
type MockClient struct {
	RedactVal  string
	RedactErr  error
	RedactFunc func(ctx context.Context, text string) (string, error)
	QueryVal   string
	QueryErr   error
	QueryFunc  func(ctx context.Context, redacted string) (string, error)

	mu           sync.Mutex
	redactInputs []string
	queryInputs  []string
	closeCalled  bool
}

var _ PipelineClient = (*MockClient)(nil)

// Redact records text and returns the canned answer
func (m *MockClient) Redact(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.redactInputs = append(m.redactInputs, text)
	fn := m.RedactFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return m.RedactVal, m.RedactErr
}

// Query records redacted and returns the canned answer
func (m *MockClient) Query(ctx context.Context, redacted string) (string, error) {
	m.mu.Lock()
	m.queryInputs = append(m.queryInputs, redacted)
	fn := m.QueryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, redacted)
	}
	return m.QueryVal, m.QueryErr
}

// Close records the call
func (m *MockClient) Close() {
	m.mu.Lock()
	m.closeCalled = true
	m.mu.Unlock()
}

// RedactInputs returns every text passed to Redact
func (m *MockClient) RedactInputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.redactInputs...)
}

// QueryInputs returns every text passed to Query
func (m *MockClient) QueryInputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queryInputs...)
}

// CloseCalled reports whether Close was called
func (m *MockClient) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}
