// Package blogsmith implements a fixed-topology blog generation pipeline:
// title brainstorming, content writing, and an optional translation step
// selected by a single routing decision.
package blogsmith

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline construction and execution.
var (
	// ErrNilClient indicates New() was called without an LLM client.
	ErrNilClient = errors.New("llm client is required")

	// ErrNilContext indicates Run() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrEmptyTopic indicates the initial state has no topic.
	ErrEmptyTopic = errors.New("topic is required")

	// ErrUnknownRoute indicates the router returned a label that is
	// neither RouteTranslate nor RouteEnd.
	ErrUnknownRoute = errors.New("router returned unknown route")
)

// StepError wraps an error with step context.
// It identifies which step failed and what operation was attempted.
type StepError struct {
	// Step is the name of the step that failed.
	Step string
	// Op is the operation that failed (e.g., "execute").
	Op string
	// Err is the underlying error from the step.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %s: %v", e.Step, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StepError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from step execution.
type PanicError struct {
	// Step is the name of the step that panicked.
	Step string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("step %s panicked: %v", e.Step, e.Value)
}

// RouteError wraps errors from the branch decision.
type RouteError struct {
	// FromStep is the step after which the decision was made.
	FromStep string
	// Returned is the label the router returned.
	Returned Route
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	return fmt.Sprintf("route after %s returned %q: %v", e.FromStep, string(e.Returned), e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RouteError) Unwrap() error {
	return e.Err
}

// CancellationError captures the state when execution was cancelled
// between steps. Once a step's model call is issued the run cannot be
// aborted mid-step, so cancellation is only observed at step boundaries.
type CancellationError struct {
	// Step is the step that was about to execute.
	Step string
	// Cause is context.Canceled or context.DeadlineExceeded.
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled before step %s: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}
