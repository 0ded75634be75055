package blogsmith

import (
	"strings"

	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/prompts"
)

// translationTemperature is low: translation wants fidelity, not creativity.
const translationTemperature = 0.3

// translateStep translates the generated content into the target language
// and overwrites FinalContent with the result.
//
// The router never sends execution here without a target language, but the
// step guards anyway and degrades to a no-op so it is safe to call directly.
func translateStep(client llm.Client) StepFunc {
	return func(ctx Context, s State) (Patch, error) {
		if !s.WantsTranslation() {
			return Patch{}, nil
		}

		raw, err := client.Invoke(ctx,
			prompts.TranslationSystemPrompt,
			prompts.Translation(s.BlogContent, s.TargetLanguage),
			translationTemperature)
		if err != nil {
			return Patch{}, err
		}

		translated := strings.TrimSpace(raw)

		return Patch{
			TranslatedContent: ptr(translated),
			FinalContent:      ptr(translated),
		}, nil
	}
}
