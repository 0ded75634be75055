package blogsmith

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context provides execution context to steps.
// It extends context.Context with a structured logger and run metadata.
//
// Context is immutable after creation. The pipeline derives per-step
// contexts with the step name set and the logger enriched.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and step
	// context during execution. Never returns nil.
	Logger() *slog.Logger

	// RunID returns the unique identifier for this generation run.
	// Auto-generated if not configured.
	RunID() string

	// StepName returns the step currently executing.
	// Empty string before execution starts.
	StepName() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger   *slog.Logger
	runID    string
	stepName string
}

// Logger returns the configured logger.
func (c *executionContext) Logger() *slog.Logger {
	return c.logger
}

// RunID returns the run identifier.
func (c *executionContext) RunID() string {
	return c.runID
}

// StepName returns the current step name.
func (c *executionContext) StepName() string {
	return c.stepName
}

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger for the context.
// The logger is enriched with run_id and step fields during execution.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRunID sets the run identifier for the context.
// If not set, a UUID is auto-generated.
func WithRunID(id string) ContextOption {
	return func(c *executionContext) {
		if id != "" {
			c.runID = id
		}
	}
}

// NewContext creates an execution context from a standard context.
//
// Example:
//
//	ctx := blogsmith.NewContext(r.Context(),
//	    blogsmith.WithLogger(logger))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}

	for _, opt := range opts {
		opt(ec)
	}

	return ec
}

// withStep returns a derived context with the step name set and the
// logger enriched. Used internally by the pipeline.
func (c *executionContext) withStep(name string) *executionContext {
	return &executionContext{
		Context:  c.Context,
		logger:   c.logger.With("run_id", c.runID, "step", name),
		runID:    c.runID,
		stepName: name,
	}
}
