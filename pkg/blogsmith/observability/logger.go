// Package observability provides structured logging, metrics, and tracing
// for the generation pipeline: slog for logs, OpenTelemetry for metrics
// and spans. Everything is opt-in with no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// LogRunStart logs the start of a generation run.
func LogRunStart(logger *slog.Logger, runID, topic string) {
	if logger == nil {
		return
	}
	logger.Info("generation run starting",
		slog.String("run_id", runID),
		slog.String("topic", topic),
	)
}

// LogRunComplete logs successful run completion.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, steps int, wordCount int) {
	if logger == nil {
		return
	}
	logger.Info("generation run completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps_executed", steps),
		slog.Int("word_count", wordCount),
	)
}

// LogRunError logs run failure.
func LogRunError(logger *slog.Logger, runID string, err error, durationMs float64, lastStep string) {
	if logger == nil {
		return
	}
	logger.Error("generation run failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_step", lastStep),
	)
}

// LogStepStart logs step execution start.
func LogStepStart(logger *slog.Logger, step string) {
	if logger == nil {
		return
	}
	logger.Debug("step starting",
		slog.String("step", step),
	)
}

// LogStepComplete logs successful step completion.
func LogStepComplete(logger *slog.Logger, step string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("step completed",
		slog.String("step", step),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStepError logs step failure.
func LogStepError(logger *slog.Logger, step string, err error) {
	if logger == nil {
		return
	}
	logger.Error("step failed",
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

// LogRoute logs the branch decision taken after the content step.
func LogRoute(logger *slog.Logger, route string, targetLanguage string) {
	if logger == nil {
		return
	}
	logger.Debug("route decided",
		slog.String("route", route),
		slog.String("target_language", targetLanguage),
	)
}

// TimedOperation measures the duration of an operation.
// The returned function reports the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
