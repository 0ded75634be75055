// Package server exposes the generation pipeline over HTTP: a JSON API
// under /api/v1 and a server-rendered form UI at the root.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/blogsmith/blogsmith/pkg/blogsmith"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/runlog"
)

// Server holds the pipeline and its collaborators. One Server instance
// serves all requests; each request gets its own state and execution
// context.
type Server struct {
	pipeline *blogsmith.Pipeline
	runs     runlog.Store // nil disables the audit log
	logger   *slog.Logger
}

// New creates a server. The run-log store may be nil.
func New(pipeline *blogsmith.Pipeline, runs runlog.Store, logger *slog.Logger) (*Server, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		pipeline: pipeline,
		runs:     runs,
		logger:   logger,
	}, nil
}

// Routes returns the HTTP handler with all endpoints registered.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/generations", s.handleGenerations)
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /{$}", s.handleForm)
	return s.logMiddleware(corsMiddleware(mux))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errValidation, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	resp, err := s.generate(r, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errGeneration,
			"failed to generate blog: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// generate runs the pipeline for one validated request and builds the
// response. Shared by the JSON API and the form UI.
func (s *Server) generate(r *http.Request, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	ctx := blogsmith.NewContext(r.Context(), blogsmith.WithLogger(s.logger))
	state := blogsmith.NewState(req.Topic, req.Transcript, req.TargetLanguage, req.Style)

	result, err := s.pipeline.Run(ctx, state)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)

	resp := &GenerateResponse{
		Title:                 result.SelectedTitle,
		Content:               result.FinalContent,
		WordCount:             result.WordCount,
		GenerationTimeSeconds: roundSeconds(elapsed),
		WasTranslated:         result.WasTranslated(),
		TargetLanguage:        req.TargetLanguage,
		BrainstormedTitles:    result.BrainstormedTitles,
	}

	s.record(ctx.RunID(), result, elapsed)
	return resp, nil
}

// record appends to the run log. Failures are logged, never fatal to the
// request.
func (s *Server) record(runID string, result blogsmith.State, elapsed time.Duration) {
	if s.runs == nil {
		return
	}
	rec := runlog.Record{
		RunID:          runID,
		Topic:          result.Topic,
		Title:          result.SelectedTitle,
		Style:          result.Style,
		WordCount:      result.WordCount,
		WasTranslated:  result.WasTranslated(),
		TargetLanguage: result.TargetLanguage,
		DurationMs:     float64(elapsed.Milliseconds()),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.runs.Save(rec); err != nil {
		s.logger.Warn("run log save failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: blogsmith.Version,
	})
}

func (s *Server) handleGenerations(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusOK, []runlog.Record{})
		return
	}
	records, err := s.runs.Recent(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errGeneration, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// --- Helpers ---

// roundSeconds converts a duration to seconds rounded to two decimals.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// corsMiddleware allows cross-origin calls from browser UIs.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
		)
	})
}
