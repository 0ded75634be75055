package blogsmith

import "strings"

// DefaultStyle is used when the caller does not request a writing style.
const DefaultStyle = "professional"

// State is the record threaded through every pipeline step.
// All fields are declared upfront; optional output fields are pointers so
// "never produced" is distinguishable from "produced empty".
//
// State is passed by value. Steps never mutate it directly - they return a
// Patch which the pipeline applies between steps.
type State struct {
	// Caller-supplied inputs.
	Topic          string `json:"topic"`
	Transcript     string `json:"transcript,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
	Style          string `json:"style"`

	// Produced by the title step.
	BrainstormedTitles []string `json:"brainstormed_titles"`
	SelectedTitle      string   `json:"selected_title"`

	// Produced by the content step.
	BlogContent string `json:"blog_content"`
	WordCount   int    `json:"word_count"`

	// Produced by the translation step, if it ran.
	TranslatedContent *string `json:"translated_content,omitempty"`

	// FinalContent is the authoritative output: the content step sets it,
	// the translation step overwrites it.
	FinalContent string `json:"final_content"`
}

// NewState creates the initial state for one generation run.
// An empty or whitespace-only style falls back to DefaultStyle.
func NewState(topic, transcript, targetLanguage, style string) State {
	if strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}
	return State{
		Topic:          topic,
		Transcript:     transcript,
		TargetLanguage: targetLanguage,
		Style:          style,
	}
}

// WantsTranslation reports whether the caller requested a translation.
// Whitespace-only target languages count as absent.
func (s State) WantsTranslation() bool {
	return strings.TrimSpace(s.TargetLanguage) != ""
}

// WasTranslated reports whether the translation step produced output.
func (s State) WasTranslated() bool {
	return s.TranslatedContent != nil
}

// Patch is the subset of state fields a step asserts new values for.
// Nil fields are left untouched when the patch is applied.
type Patch struct {
	BrainstormedTitles []string
	SelectedTitle      *string
	BlogContent        *string
	WordCount          *int
	TranslatedContent  *string
	FinalContent       *string
}

// Apply merges the patch into the state by explicit field assignment and
// returns the updated state. Fields the patch does not mention keep their
// prior values.
func (s State) Apply(p Patch) State {
	if p.BrainstormedTitles != nil {
		s.BrainstormedTitles = p.BrainstormedTitles
	}
	if p.SelectedTitle != nil {
		s.SelectedTitle = *p.SelectedTitle
	}
	if p.BlogContent != nil {
		s.BlogContent = *p.BlogContent
	}
	if p.WordCount != nil {
		s.WordCount = *p.WordCount
	}
	if p.TranslatedContent != nil {
		s.TranslatedContent = p.TranslatedContent
	}
	if p.FinalContent != nil {
		s.FinalContent = *p.FinalContent
	}
	return s
}

// ptr returns a pointer to v. Used by steps when building patches.
func ptr[T any](v T) *T {
	return &v
}
