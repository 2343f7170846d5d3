package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider. Reply takes
// precedence over Text when both are set.
type MockResponse struct {
	Text  string
	Reply Reply
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing and offline runs.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	fallback  *MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// WithFallback sets the response returned once the queue is drained.
func (m *MockProvider) WithFallback(resp MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &resp
	return m
}

// Generate returns the next canned response, the fallback, or
// ErrProviderUnavailable if neither is available.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.fallback != nil:
		resp = *m.fallback
	default:
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	reply := resp.Reply
	if reply == nil {
		reply = TextReply{Text: resp.Text}
	}

	return &Response{
		Reply:      reply,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
