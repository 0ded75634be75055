package blogsmith

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/observability"
)

// Step names, in execution order.
const (
	StepTitle     = "title"
	StepContent   = "content"
	StepTranslate = "translate"
)

// StepFunc is the signature for all pipeline steps.
// Steps receive the execution context and a read-only snapshot of the
// state, and return a patch with the fields they assert new values for.
type StepFunc func(ctx Context, state State) (Patch, error)

// Step pairs a name with its function. The name appears in logs, metrics,
// spans, and wrapped errors.
type Step struct {
	Name string
	Run  StepFunc
}

// Pipeline executes the fixed blog generation topology:
//
//	title -> content -> {translate | end}
//
// The topology never changes at runtime, so there is no generic graph
// builder: an ordered step sequence plus one routing decision is enough.
//
// A Pipeline is immutable after New and holds no per-run state, so a
// single instance can serve concurrent Run calls; each call carries its
// own State.
type Pipeline struct {
	steps     []Step
	decide    RouterFunc
	translate Step

	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
}

// New wires the step functions and the branch decision into the fixed
// topology. The client is required; observability collaborators default
// to no-ops.
func New(client llm.Client, opts ...Option) (*Pipeline, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	p := &Pipeline{
		steps: []Step{
			{Name: StepTitle, Run: titleStep(client)},
			{Name: StepContent, Run: contentStep(client)},
		},
		decide:    ShouldTranslate,
		translate: Step{Name: StepTranslate, Run: translateStep(client)},
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run executes the pipeline with the given initial state and returns the
// final merged state.
//
// Steps execute strictly sequentially; each patch is merged before the
// next step begins. No step runs more than once, and none may be skipped
// except the translation step. The pipeline performs no retries or
// timeouts - those belong to the caller or the LLM client.
//
// On error, Run returns the state as it stood when the failure occurred.
func (p *Pipeline) Run(ctx Context, initial State) (result State, runErr error) {
	if ctx == nil {
		return initial, ErrNilContext
	}
	if strings.TrimSpace(initial.Topic) == "" {
		return initial, ErrEmptyTopic
	}

	runID := ctx.RunID()
	start := time.Now()

	observability.LogRunStart(ctx.Logger(), runID, initial.Topic)

	var execCtx context.Context = ctx
	var runSpan trace.Span
	if p.tracing {
		execCtx, runSpan = p.spans.StartRunSpan(ctx, runID, initial.Topic)
		defer func() {
			p.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var steps int
	result, steps, runErr = p.runSteps(execCtx, ctx, initial)

	duration := time.Since(start)
	p.metrics.RecordRun(ctx, runErr == nil, result.WasTranslated(), duration)

	if runErr != nil {
		lastStep := ""
		switch e := runErr.(type) {
		case *StepError:
			lastStep = e.Step
		case *PanicError:
			lastStep = e.Step
		case *CancellationError:
			lastStep = e.Step
		}
		observability.LogRunError(ctx.Logger(), runID, runErr, float64(duration.Milliseconds()), lastStep)
		return result, runErr
	}

	p.metrics.RecordWordCount(ctx, int64(result.WordCount))
	observability.LogRunComplete(ctx.Logger(), runID, float64(duration.Milliseconds()), steps, result.WordCount)

	return result, nil
}

// runSteps executes the unconditional steps in order, evaluates the
// branch decision on the post-content state, and runs the translation
// step when routed there. Returns the final state and the number of
// steps executed.
func (p *Pipeline) runSteps(tracingCtx context.Context, ctx Context, state State) (State, int, error) {
	steps := 0

	for _, step := range p.steps {
		var err error
		state, err = p.executeStep(tracingCtx, ctx, step, state)
		if err != nil {
			return state, steps, err
		}
		steps++
	}

	// The decision uses the state as it stands after the content step,
	// not the caller's original request.
	route := p.decide(state)
	observability.LogRoute(ctx.Logger(), string(route), state.TargetLanguage)

	switch route {
	case RouteEnd:
		return state, steps, nil
	case RouteTranslate:
		var err error
		state, err = p.executeStep(tracingCtx, ctx, p.translate, state)
		if err != nil {
			return state, steps, err
		}
		return state, steps + 1, nil
	default:
		return state, steps, &RouteError{
			FromStep: StepContent,
			Returned: route,
			Err:      ErrUnknownRoute,
		}
	}
}

// executeStep runs a single step with cancellation check, observability,
// and panic recovery, then merges its patch into the state.
func (p *Pipeline) executeStep(tracingCtx context.Context, ctx Context, step Step, state State) (State, error) {
	// Cancellation is only observed between steps; an in-flight model
	// call cannot be aborted.
	select {
	case <-ctx.Done():
		return state, &CancellationError{Step: step.Name, Cause: ctx.Err()}
	default:
	}

	observability.LogStepStart(ctx.Logger(), step.Name)

	stepCtx := ctx
	if ec, ok := ctx.(*executionContext); ok {
		stepCtx = ec.withStep(step.Name)
	}

	var stepSpan trace.Span
	if p.tracing {
		tracingCtx, stepSpan = p.spans.StartStepSpan(tracingCtx, step.Name)
	}

	stepStart := time.Now()
	patch, err := runStepFunc(stepCtx, step, state)
	stepDuration := time.Since(stepStart)

	p.metrics.RecordStepExecution(tracingCtx, step.Name, stepDuration, err)
	if p.tracing {
		p.spans.EndSpanWithError(stepSpan, err)
	}

	if err != nil {
		observability.LogStepError(ctx.Logger(), step.Name, err)
		return state, err
	}

	observability.LogStepComplete(ctx.Logger(), step.Name, float64(stepDuration.Milliseconds()))
	return state.Apply(patch), nil
}

// runStepFunc invokes the step with panic recovery. Step errors are
// wrapped with the step name; panics become PanicError.
func runStepFunc(ctx Context, step Step, state State) (patch Patch, err error) {
	defer func() {
		if r := recover(); r != nil {
			patch = Patch{}
			err = &PanicError{
				Step:  step.Name,
				Value: r,
				Stack: string(debug.Stack()),
			}
		}
	}()

	patch, err = step.Run(ctx, state)
	if err != nil {
		return Patch{}, &StepError{
			Step: step.Name,
			Op:   "execute",
			Err:  err,
		}
	}
	return patch, nil
}
