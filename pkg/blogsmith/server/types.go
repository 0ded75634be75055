package server

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Request field bounds.
const (
	topicMinLen      = 3
	topicMaxLen      = 500
	transcriptMaxLen = 50000
)

// GenerateRequest is the client payload for POST /api/v1/generate.
type GenerateRequest struct {
	// Topic is the subject to write about. Required, 3-500 characters.
	Topic string `json:"topic"`
	// Transcript is optional source material, at most 50000 characters.
	Transcript string `json:"transcript,omitempty"`
	// TargetLanguage, when non-blank, requests a translation of the
	// final content.
	TargetLanguage string `json:"target_language,omitempty"`
	// Style defaults to "professional".
	Style string `json:"style,omitempty"`
}

// Validate checks the request bounds. It runs before any model call;
// failures are client errors, never generation failures.
func (r *GenerateRequest) Validate() error {
	topicLen := utf8.RuneCountInString(strings.TrimSpace(r.Topic))
	if topicLen < topicMinLen {
		return fmt.Errorf("topic must be at least %d characters", topicMinLen)
	}
	if topicLen > topicMaxLen {
		return fmt.Errorf("topic must be at most %d characters", topicMaxLen)
	}
	if utf8.RuneCountInString(r.Transcript) > transcriptMaxLen {
		return fmt.Errorf("transcript must be at most %d characters", transcriptMaxLen)
	}
	return nil
}

// GenerateResponse is the server payload after a successful generation.
type GenerateResponse struct {
	Title                 string   `json:"title"`
	Content               string   `json:"content"`
	WordCount             int      `json:"word_count"`
	GenerationTimeSeconds float64  `json:"generation_time_seconds"`
	WasTranslated         bool     `json:"was_translated"`
	TargetLanguage        string   `json:"target_language,omitempty"`
	BrainstormedTitles    []string `json:"brainstormed_titles"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the uniform error format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error codes used in ErrorResponse.Error.
const (
	errValidation = "validation_error"
	errGeneration = "generation_failed"
)
