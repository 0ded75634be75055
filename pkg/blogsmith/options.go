package blogsmith

import "github.com/blogsmith/blogsmith/pkg/blogsmith/observability"

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(rec observability.MetricsRecorder) Option {
	return func(p *Pipeline) {
		if rec != nil {
			p.metrics = rec
		}
	}
}

// WithTracing enables span creation using the given span manager.
// Default: tracing disabled.
func WithTracing(spans observability.SpanManager) Option {
	return func(p *Pipeline) {
		if spans != nil {
			p.spans = spans
			p.tracing = true
		}
	}
}

// withRouter overrides the branch decision. Test hook only - the
// production topology always uses ShouldTranslate.
func withRouter(decide RouterFunc) Option {
	return func(p *Pipeline) {
		if decide != nil {
			p.decide = decide
		}
	}
}
