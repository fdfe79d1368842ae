package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/lumina-api/internal/generation"
)

// MockModelClient implements generation.Client for testing.
type MockModelClient struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (string, error)

	// Default response values
	Response string
	Err      error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains all requests passed to Generate calls
		Requests []generation.Request
	}
}

var _ generation.Client = (*MockModelClient)(nil)

// Generate implements the generation.Client interface
func (m *MockModelClient) Generate(ctx context.Context, req generation.Request) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	return m.Response, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockModelClient) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockModelClient) LastRequest() (generation.Request, bool) {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Requests) == 0 {
		return generation.Request{}, false
	}
	return m.GenerateCalls.Requests[len(m.GenerateCalls.Requests)-1], true
}

// NewMockModelClientWithResponse creates a MockModelClient that returns text.
func NewMockModelClientWithResponse(text string) *MockModelClient {
	return &MockModelClient{Response: text}
}

// NewMockModelClientWithError creates a MockModelClient that returns err.
func NewMockModelClientWithError(err error) *MockModelClient {
	return &MockModelClient{Err: err}
}

// MockModelClientThatFails simulates a failed request to the endpoint.
func MockModelClientThatFails() *MockModelClient {
	return &MockModelClient{Err: generation.ErrTransport}
}

// MockModelClientWithContentBlocked simulates a safety refusal.
func MockModelClientWithContentBlocked() *MockModelClient {
	return &MockModelClient{Err: errors.Join(generation.ErrTransport, generation.ErrContentBlocked)}
}

// Reset resets the call tracking state
func (m *MockModelClient) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Requests = nil
}
