package blogsmith

import (
	"strings"

	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/prompts"
)

// contentTemperature balances coherence with engaging writing.
const contentTemperature = 0.7

// contentStep writes the full blog post for the selected title. It also
// pre-populates FinalContent, assuming it may be the last step to run;
// the translation step is permitted to overwrite it.
func contentStep(client llm.Client) StepFunc {
	return func(ctx Context, s State) (Patch, error) {
		raw, err := client.Invoke(ctx,
			prompts.ContentSystemPrompt,
			prompts.ContentGeneration(s.SelectedTitle, s.Topic, s.Transcript, s.Style),
			contentTemperature)
		if err != nil {
			return Patch{}, err
		}

		content := strings.TrimSpace(raw)
		wordCount := len(strings.Fields(content))

		return Patch{
			BlogContent:  ptr(content),
			WordCount:    ptr(wordCount),
			FinalContent: ptr(content),
		}, nil
	}
}
