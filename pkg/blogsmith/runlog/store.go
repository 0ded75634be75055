// Package runlog records completed generation runs for auditing and the
// recent-generations listing. It stores response metadata only - the
// per-run workflow state is discarded once the response is built.
package runlog

import (
	"errors"
	"time"
)

// Record is one completed generation.
type Record struct {
	RunID          string    `json:"run_id"`
	Topic          string    `json:"topic"`
	Title          string    `json:"title"`
	Style          string    `json:"style"`
	WordCount      int       `json:"word_count"`
	WasTranslated  bool      `json:"was_translated"`
	TargetLanguage string    `json:"target_language,omitempty"`
	DurationMs     float64   `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store persists generation records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores one record. Saving the same RunID twice overwrites.
	Save(rec Record) error

	// Recent returns up to limit records, newest first. A non-positive
	// limit returns all records.
	// Returns an empty slice (not an error) when the log is empty.
	Recent(limit int) ([]Record, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for run-log operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("run log store closed")
)
