package blogsmith

import (
	"fmt"
	"slices"
	"strings"

	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/prompts"
)

// titleTemperature is slightly high for creative brainstorming.
const titleTemperature = 0.8

// titleStep brainstorms five candidate titles and asks the model to pick
// one. Both calls go to the same client; either failure aborts the run.
//
// Parsing and selection recover locally:
//   - zero parsed candidates falls back to one synthesized title
//   - a selection that is not verbatim one of the candidates falls back
//     to the first candidate (exact match only, no fuzzy matching)
func titleStep(client llm.Client) StepFunc {
	return func(ctx Context, s State) (Patch, error) {
		raw, err := client.Invoke(ctx,
			prompts.TitleSystemPrompt,
			prompts.TitleGeneration(s.Topic, s.Transcript, s.Style),
			titleTemperature)
		if err != nil {
			return Patch{}, err
		}

		titles := parseNumberedTitles(raw)
		if len(titles) == 0 {
			ctx.Logger().Warn("title parsing yielded no candidates, using fallback",
				"topic", s.Topic)
			titles = []string{fallbackTitle(s.Topic)}
		}

		chosen, err := client.Invoke(ctx,
			prompts.TitleSystemPrompt,
			prompts.TitleSelection(titles, s.Topic, s.Style),
			titleTemperature)
		if err != nil {
			return Patch{}, err
		}

		selected := strings.TrimSpace(chosen)
		if !slices.Contains(titles, selected) {
			ctx.Logger().Debug("selection did not match a candidate, using first",
				"returned", selected)
			selected = titles[0]
		}

		return Patch{
			BrainstormedTitles: titles,
			SelectedTitle:      ptr(selected),
		}, nil
	}
}

// parseNumberedTitles scans the model output line by line, keeping only
// lines that begin with a digit and stripping the leading "N." or "N)"
// marker.
func parseNumberedTitles(raw string) []string {
	var titles []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		if title := stripNumberMarker(line); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// stripNumberMarker removes a leading "N." or "N)" marker from the line.
// Digits not followed by a marker are part of the title ("2024 was a
// great year") and the line is kept whole.
func stripNumberMarker(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// fallbackTitle synthesizes the single title used when parsing fails.
func fallbackTitle(topic string) string {
	return fmt.Sprintf("Complete Guide to %s", topic)
}
