package testutils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/papercomputeco/duet/pkg/invoker"
)

// MockInvoker is a test invoker that records every request and returns
// predictable responses.
type MockInvoker struct {
	mu       sync.Mutex
	requests []invoker.Request

	// Respond builds the response for the n-th call (1-based). When nil the
	// response is "<model> reply <n>".
	Respond func(n int, req invoker.Request) string

	// FailAt causes the n-th call (1-based) to return an InvocationError.
	// Zero never fails.
	FailAt int
}

func NewMockInvoker() *MockInvoker {
	return &MockInvoker{}
}

func (m *MockInvoker) Invoke(_ context.Context, req invoker.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	n := len(m.requests)

	if m.FailAt != 0 && n == m.FailAt {
		return "", &invoker.InvocationError{
			Model:    req.Model,
			ExitCode: 1,
			Stderr:   "mock failure",
			Err:      errors.New("exit status 1"),
		}
	}

	if m.Respond != nil {
		return m.Respond(n, req), nil
	}
	return fmt.Sprintf("%s reply %d", req.Model, n), nil
}

// Requests returns a copy of every request received so far.
func (m *MockInvoker) Requests() []invoker.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]invoker.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns how many times Invoke ran.
func (m *MockInvoker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
