package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsmith/blogsmith/pkg/blogsmith"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/runlog"
)

const fiveTitlesResponse = `1. How to Master Remote Work in 30 Days
2. 10 Remote Work Habits That Changed My Career
3. Is Remote Work Right for You?
4. The Ultimate Guide to Work-From-Home Success
5. Remote Work: The Quiet Revolution`

const blogContentResponse = `## Why Remote Work Matters

Remote work has reshaped how teams collaborate. This post covers the
habits that make it sustainable.

## Getting Started

Pick a dedicated workspace and guard your calendar.`

const translatedResponse = `## Por Que Importa el Trabajo Remoto

El trabajo remoto ha transformado la colaboracion de los equipos.`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// newTestServer builds a server over a scripted client, returning the stub
// for call assertions and the memory run log for audit assertions.
func newTestServer(t *testing.T, responses ...string) (http.Handler, *llm.StubClient, *runlog.MemoryStore) {
	t.Helper()
	client := llm.NewStubClient(responses...)
	pipeline, err := blogsmith.New(client)
	require.NoError(t, err)

	store := runlog.NewMemoryStore()
	srv, err := New(pipeline, store, quietLogger())
	require.NoError(t, err)
	return srv.Routes(), client, store
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestNew_RequiresPipeline tests constructor validation.
func TestNew_RequiresPipeline(t *testing.T) {
	_, err := New(nil, nil, nil)

	assert.ErrorContains(t, err, "pipeline is required")
}

// TestGenerate_WithoutTranslation tests the full request path: five
// candidates brainstormed, the model's pick echoed back, no translation.
func TestGenerate_WithoutTranslation(t *testing.T) {
	handler, client, _ := newTestServer(t,
		fiveTitlesResponse,
		"The Ultimate Guide to Work-From-Home Success",
		blogContentResponse,
	)

	rec := postJSON(t, handler, "/api/v1/generate", GenerateRequest{Topic: "Remote Work"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "The Ultimate Guide to Work-From-Home Success", resp.Title)
	assert.Equal(t, blogContentResponse, resp.Content)
	assert.Equal(t, len(strings.Fields(blogContentResponse)), resp.WordCount)
	assert.False(t, resp.WasTranslated)
	assert.Empty(t, resp.TargetLanguage)
	assert.Len(t, resp.BrainstormedTitles, 5)
	assert.Contains(t, resp.BrainstormedTitles, resp.Title)
	assert.GreaterOrEqual(t, resp.GenerationTimeSeconds, float64(0))
	assert.Equal(t, 3, client.CallCount())
}

// TestGenerate_WithTranslation tests that a target language routes the run
// through translation and the response content is the translated text.
func TestGenerate_WithTranslation(t *testing.T) {
	handler, client, _ := newTestServer(t,
		fiveTitlesResponse,
		"The Ultimate Guide to Work-From-Home Success",
		blogContentResponse,
		translatedResponse,
	)

	rec := postJSON(t, handler, "/api/v1/generate", GenerateRequest{
		Topic:          "Remote Work",
		TargetLanguage: "Spanish",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.WasTranslated)
	assert.Equal(t, "Spanish", resp.TargetLanguage)
	assert.Equal(t, translatedResponse, resp.Content)
	assert.Equal(t, 4, client.CallCount())
}

// TestGenerate_TopicTooShort tests that validation rejects the request
// before any model call.
func TestGenerate_TopicTooShort(t *testing.T) {
	handler, client, _ := newTestServer(t, fiveTitlesResponse)

	rec := postJSON(t, handler, "/api/v1/generate", GenerateRequest{Topic: "ab"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errValidation, resp.Error)
	assert.Contains(t, resp.Message, "at least 3")
	assert.Equal(t, 0, client.CallCount())
}

// TestGenerate_TopicTooLong tests the upper topic bound in runes.
func TestGenerate_TopicTooLong(t *testing.T) {
	handler, client, _ := newTestServer(t, fiveTitlesResponse)

	rec := postJSON(t, handler, "/api/v1/generate", GenerateRequest{
		Topic: strings.Repeat("x", 501),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, client.CallCount())
}

// TestGenerate_TranscriptTooLong tests the transcript bound.
func TestGenerate_TranscriptTooLong(t *testing.T) {
	handler, client, _ := newTestServer(t, fiveTitlesResponse)

	rec := postJSON(t, handler, "/api/v1/generate", GenerateRequest{
		Topic:      "Remote Work",
		Transcript: strings.Repeat("x", 50001),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errValidation, resp.Error)
	assert.Equal(t, 0, client.CallCount())
}

// TestGenerate_MalformedBody tests JSON decode failure.
func TestGenerate_MalformedBody(t *testing.T) {
	handler, _, _ := newTestServer(t, fiveTitlesResponse)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errValidation, resp.Error)
}

// TestGenerate_PipelineFailure tests the 500 path: the upstream error is
// surfaced with the generation_failed code.
func TestGenerate_PipelineFailure(t *testing.T) {
	client := llm.NewFailingStubClient(errors.New("rate limited"))
	pipeline, err := blogsmith.New(client)
	require.NoError(t, err)
	srv, err := New(pipeline, nil, quietLogger())
	require.NoError(t, err)

	rec := postJSON(t, srv.Routes(), "/api/v1/generate", GenerateRequest{Topic: "Remote Work"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errGeneration, resp.Error)
	assert.Contains(t, resp.Message, "failed to generate blog")
	assert.Contains(t, resp.Message, "rate limited")
}

// TestGenerate_RecordsRunLog tests that each successful generation lands
// in the audit log.
func TestGenerate_RecordsRunLog(t *testing.T) {
	handler, _, store := newTestServer(t,
		fiveTitlesResponse,
		"The Ultimate Guide to Work-From-Home Success",
		blogContentResponse,
	)

	rec := postJSON(t, handler, "/api/v1/generate", GenerateRequest{Topic: "Remote Work"})
	require.Equal(t, http.StatusOK, rec.Code)

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Remote Work", records[0].Topic)
	assert.Equal(t, "The Ultimate Guide to Work-From-Home Success", records[0].Title)
	assert.NotEmpty(t, records[0].RunID)
	assert.False(t, records[0].WasTranslated)
}

// TestHealth tests the liveness endpoint.
func TestHealth(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, blogsmith.Version, resp.Version)
}

// TestGenerations_EmptyLog tests the listing before any generation.
func TestGenerations_EmptyLog(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var records []runlog.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Empty(t, records)
}

// TestGenerations_NilStore tests that a disabled run log still serves an
// empty listing.
func TestGenerations_NilStore(t *testing.T) {
	pipeline, err := blogsmith.New(llm.NewStubClient("ok"))
	require.NoError(t, err)
	srv, err := New(pipeline, nil, quietLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// TestCORS_Preflight tests the OPTIONS short-circuit and headers.
func TestCORS_Preflight(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

// TestForm_Get tests the blank form.
func TestForm_Get(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `name="topic"`)
	assert.Contains(t, body, `name="target_language"`)
	for _, style := range styleOptions {
		assert.Contains(t, body, ">"+style+"<")
	}
}

// TestForm_PostRendersResult tests a successful submission: the selected
// title and rendered markdown appear in the page.
func TestForm_PostRendersResult(t *testing.T) {
	handler, _, _ := newTestServer(t,
		fiveTitlesResponse,
		"The Ultimate Guide to Work-From-Home Success",
		blogContentResponse,
	)

	form := url.Values{"topic": {"Remote Work"}, "style": {"casual"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "The Ultimate Guide to Work-From-Home Success")
	assert.Contains(t, body, "<h2>Why Remote Work Matters</h2>")
	assert.Contains(t, body, "Titles considered")
}

// TestForm_PostValidationError tests that an invalid submission re-renders
// the form with the error and the echoed input.
func TestForm_PostValidationError(t *testing.T) {
	handler, client, _ := newTestServer(t, fiveTitlesResponse)

	form := url.Values{"topic": {"ab"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 3 characters")
	assert.Contains(t, rec.Body.String(), `value="ab"`)
	assert.Equal(t, 0, client.CallCount())
}

// TestRenderMarkdown tests markdown conversion and HTML escaping of model
// output.
func TestRenderMarkdown(t *testing.T) {
	html := string(renderMarkdown("## Heading\n\n**bold** text"))
	assert.Contains(t, html, "<h2>Heading</h2>")
	assert.Contains(t, html, "<strong>bold</strong>")

	escaped := string(renderMarkdown("<script>alert(1)</script>"))
	assert.NotContains(t, escaped, "<script>")
}

// TestRoundSeconds tests the two-decimal rounding used in responses.
func TestRoundSeconds(t *testing.T) {
	assert.Equal(t, 1.23, roundSeconds(1234*time.Millisecond))
	assert.Equal(t, 0.0, roundSeconds(0))
}
