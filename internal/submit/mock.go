package submit

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockSink.
type MockResponse struct {
	StatusCode int
	Err        error
}

// MockSink is a deterministic Sink for testing.
// It returns canned responses in FIFO order and records all payloads. Once
// the queue is empty every send succeeds with HTTP 200.
type MockSink struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Payload

	// Block, when set, is waited on (or ctx) before each send returns.
	Block chan struct{}
}

// NewMockSink creates a MockSink with the given canned responses.
func NewMockSink(responses ...MockResponse) *MockSink {
	return &MockSink{responses: responses}
}

func (m *MockSink) Send(ctx context.Context, p Payload) (*Receipt, error) {
	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			m.record(p)
			return nil, ctx.Err()
		}
	}

	resp := m.record(p)
	if resp.Err != nil {
		return &Receipt{StatusCode: resp.StatusCode, Attempts: 1}, resp.Err
	}
	code := resp.StatusCode
	if code == 0 {
		code = 200
	}
	return &Receipt{StatusCode: code, Attempts: 1}, nil
}

func (m *MockSink) record(p Payload) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, p)
	if len(m.responses) == 0 {
		return MockResponse{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp
}

// Name returns "mock".
func (m *MockSink) Name() string {
	return "mock"
}

// CallCount returns the number of Send calls made.
func (m *MockSink) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Payloads returns a copy of the payloads received so far.
func (m *MockSink) Payloads() []Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Payload, len(m.Calls))
	copy(out, m.Calls)
	return out
}
