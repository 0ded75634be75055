package llm

import (
	"context"
	"sync"
)

// Call records one Invoke made against a StubClient.
type Call struct {
	System      string
	User        string
	Temperature float64
}

// StubClient is a scripted Client for tests and local runs without an
// API key. Responses are returned in order; when the script is exhausted
// the last response repeats. A non-nil Err is returned instead.
type StubClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []Call
}

// NewStubClient creates a stub that replays the given responses.
func NewStubClient(responses ...string) *StubClient {
	return &StubClient{responses: responses}
}

// NewFailingStubClient creates a stub whose every call fails with err.
func NewFailingStubClient(err error) *StubClient {
	return &StubClient{err: err}
}

// Invoke implements Client.
func (s *StubClient) Invoke(_ context.Context, system, user string, temperature float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{System: system, User: user, Temperature: temperature})

	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	idx := len(s.calls) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

// Calls returns a copy of the recorded calls.
func (s *StubClient) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times Invoke was called.
func (s *StubClient) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
