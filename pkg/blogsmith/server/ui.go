package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
)

// Styles offered by the form. The API accepts any label; these are the
// documented ones.
var styleOptions = []string{"professional", "casual", "technical", "storytelling"}

// formData feeds the UI template.
type formData struct {
	Styles []string

	// Echoed form values.
	Topic          string
	Transcript     string
	TargetLanguage string
	Style          string

	// One of Error or Result is set after a submission.
	Error  string
	Result *formResult
}

type formResult struct {
	Title              string
	ContentHTML        template.HTML
	WordCount          int
	Seconds            float64
	WasTranslated      bool
	TargetLanguage     string
	BrainstormedTitles []string
}

// handleForm serves the form on GET and runs a generation on POST,
// rendering the markdown result server-side.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	data := formData{Styles: styleOptions, Style: "professional"}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req := GenerateRequest{
			Topic:          r.PostFormValue("topic"),
			Transcript:     r.PostFormValue("transcript"),
			TargetLanguage: r.PostFormValue("target_language"),
			Style:          r.PostFormValue("style"),
		}
		data.Topic = req.Topic
		data.Transcript = req.Transcript
		data.TargetLanguage = req.TargetLanguage
		if req.Style != "" {
			data.Style = req.Style
		}

		if err := req.Validate(); err != nil {
			data.Error = err.Error()
		} else if resp, err := s.generate(r, req); err != nil {
			data.Error = "generation failed: " + err.Error()
		} else {
			data.Result = &formResult{
				Title:              resp.Title,
				ContentHTML:        renderMarkdown(resp.Content),
				WordCount:          resp.WordCount,
				Seconds:            resp.GenerationTimeSeconds,
				WasTranslated:      resp.WasTranslated,
				TargetLanguage:     resp.TargetLanguage,
				BrainstormedTitles: resp.BrainstormedTitles,
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		s.logger.Error("render form", "error", err.Error())
	}
}

// renderMarkdown converts generated markdown to HTML for the result pane.
// The content comes from the model, so it is rendered rather than trusted
// as raw HTML: goldmark escapes raw HTML blocks by default.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		// Fall back to the escaped source text.
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Blogsmith</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
textarea, input, select { width: 100%; box-sizing: border-box; margin: 0.25rem 0 1rem; padding: 0.5rem; font: inherit; }
textarea { min-height: 6rem; }
button { padding: 0.6rem 1.4rem; font: inherit; cursor: pointer; }
.error { color: #b00020; border: 1px solid #b00020; padding: 0.75rem; margin: 1rem 0; }
.meta { color: #555; font-size: 0.9rem; margin: 1rem 0; }
.result { border-top: 2px solid #ddd; margin-top: 2rem; padding-top: 1rem; }
</style>
</head>
<body>
<h1>Blogsmith</h1>
<p>Generate a blog post from a topic. Optionally base it on a transcript or translate the result.</p>
<form method="post" action="/">
<label for="topic">Topic</label>
<input id="topic" name="topic" value="{{.Topic}}" placeholder="e.g. Benefits of Remote Work" required>
<label for="transcript">Transcript (optional)</label>
<textarea id="transcript" name="transcript" placeholder="Paste a video or podcast transcript to use as source material">{{.Transcript}}</textarea>
<label for="style">Style</label>
<select id="style" name="style">
{{- $sel := .Style}}
{{- range .Styles}}
<option value="{{.}}"{{if eq . $sel}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<label for="target_language">Translate to (optional)</label>
<input id="target_language" name="target_language" value="{{.TargetLanguage}}" placeholder="e.g. Spanish">
<button type="submit">Generate</button>
</form>
{{- if .Error}}
<div class="error">{{.Error}}</div>
{{- end}}
{{- with .Result}}
<div class="result">
<h2>{{.Title}}</h2>
<div class="meta">
{{.WordCount}} words &middot; generated in {{.Seconds}}s
{{- if .WasTranslated}} &middot; translated to {{.TargetLanguage}}{{end}}
</div>
{{.ContentHTML}}
<details>
<summary>Titles considered</summary>
<ol>
{{- range .BrainstormedTitles}}
<li>{{.}}</li>
{{- end}}
</ol>
</details>
</div>
{{- end}}
</body>
</html>
`))
