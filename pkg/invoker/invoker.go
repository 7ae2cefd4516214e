// Package invoker issues one blocking request to an external model tool and
// normalizes its result.
package invoker

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvocationFailed matches every *InvocationError via errors.Is.
var ErrInvocationFailed = errors.New("model invocation failed")

// Request is a single prompt for a single model.
type Request struct {
	Model  string
	Prompt string

	// ConversationID, when non-empty, asks the tool to continue an existing
	// conversation instead of starting a fresh one.
	ConversationID string
}

// Invoker is the capability the relay needs from a model backend: one
// synchronous request/response call. Implementations return the response
// with surrounding whitespace trimmed.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// Func adapts an ordinary function to the Invoker interface.
type Func func(ctx context.Context, req Request) (string, error)

// Invoke calls f.
func (f Func) Invoke(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// InvocationError reports that the external tool failed for a turn.
type InvocationError struct {
	Model string

	// ExitCode is the tool's exit status, or -1 when it never ran.
	ExitCode int

	// Stderr is whatever diagnostic output the tool produced.
	Stderr string

	Err error
}

// Error names the model and the exit status, or the start error when the
// tool never ran.
func (e *InvocationError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("running model %s: exit status %d", e.Model, e.ExitCode)
	}
	return fmt.Sprintf("running model %s: %v", e.Model, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvocationFailed.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocationFailed
}
