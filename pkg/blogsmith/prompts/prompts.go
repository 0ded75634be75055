// Package prompts holds the instruction templates for every pipeline step
// and the pure formatting that assembles them. Keeping prompt text apart
// from step logic lets it be reviewed and tuned without touching control
// flow.
package prompts

import (
	"fmt"
	"strings"
)

// Transcript bounds, in characters. Transcripts are cut to these lengths
// before being embedded in an instruction, to respect model input-size
// limits.
const (
	// TitleTranscriptLimit bounds the transcript excerpt in title prompts.
	TitleTranscriptLimit = 2000
	// ContentTranscriptLimit bounds the transcript excerpt in content
	// prompts (roughly a thousand words).
	ContentTranscriptLimit = 5000
)

// TitleSystemPrompt sets the persona for both title calls.
const TitleSystemPrompt = `You are an expert blog title writer with years of experience in SEO and content marketing.

Your titles are:
- Attention-grabbing (make people WANT to click)
- SEO-friendly (include relevant keywords naturally)
- Clear and specific (reader knows what they'll learn)
- Appropriately formatted (use numbers, power words)

You understand different writing styles:
- Professional: Industry terms, authoritative tone
- Casual: Friendly, conversational, relatable
- Technical: Precise, detailed, jargon-appropriate
- Storytelling: Narrative hooks, curiosity-building`

const titleGenerationTemplate = `Generate 5 creative and engaging blog post titles for the following topic.

TOPIC: %s

%s

WRITING STYLE: %s

REQUIREMENTS:
1. Generate exactly 5 title options
2. Each title should be unique in approach
3. Use proven title formats (how-to, listicles, questions, etc.)
4. Keep titles under 60 characters for SEO
5. Include power words that trigger emotion

TITLE TYPES TO INCLUDE:
- One "How to..." title
- One numbered list title (e.g., "10 Ways to...")
- One question-based title
- One benefit-focused title
- One creative/unique title

OUTPUT FORMAT:
Return ONLY the 5 titles, one per line, numbered 1-5.
Do not include any explanation or additional text.`

const titleSelectionTemplate = `From the following title options, select the BEST one for SEO and engagement.

TITLES:
%s

TOPIC: %s
STYLE: %s

Consider:
1. SEO value (keywords, length, searchability)
2. Click-through potential (would YOU click this?)
3. Accuracy (does it promise something the content can deliver?)
4. Style match (does it fit the requested writing style?)

OUTPUT FORMAT:
Return ONLY the single best title, nothing else.`

// ContentSystemPrompt sets the persona for the content call.
const ContentSystemPrompt = `You are a professional blog writer with expertise in creating engaging, informative content.

Your writing style is:
- Clear and easy to read
- Well-structured with logical flow
- Rich with examples and practical advice
- Properly formatted for online reading
- SEO-conscious without being spammy

You write in Markdown format with:
- Proper heading hierarchy (##, ###)
- Bullet points for lists
- Bold text for emphasis
- Short paragraphs (2-3 sentences max)`

const contentGenerationTemplate = `Write a comprehensive blog post with the following specifications:

TITLE: %s
TOPIC: %s
WRITING STYLE: %s

%s

REQUIREMENTS:
1. Length: 800-1200 words
2. Format: Markdown
3. Structure:
   - Engaging introduction (2-3 sentences with a hook)
   - Clear subheadings (use ## for main sections)
   - Practical examples or tips
   - Conclusion with a call-to-action

4. Style Guidelines based on "%s":
   - Professional: Industry terms, data-backed claims, authoritative
   - Casual: Conversational, use "you", relatable examples
   - Technical: Precise terminology, code examples if relevant
   - Storytelling: Narrative arc, personal anecdotes, emotional hooks

5. SEO Best Practices:
   - Use the main keyword in first paragraph
   - Include 2-3 subheadings with related keywords
   - Write meta-description-worthy first sentences

IMPORTANT:
- Do NOT include the title as an H1 (just start with introduction)
- Do NOT include "Introduction" or "Conclusion" as headings
- Make content genuinely useful, not filler

OUTPUT: Return ONLY the blog content in Markdown format.`

const contentTranscriptSection = `TRANSCRIPT TO REFERENCE:
The following is a transcript from a video/podcast. Use this as source material,
but DO NOT plagiarize. Synthesize the ideas in your own words.

---
%s
---

Key ideas to incorporate from the transcript:
- Main points discussed
- Any statistics or data mentioned
- Examples or stories shared`

const contentNoTranscriptSection = `Note: No source transcript provided. Generate content based solely on the topic.
Research-backed, practical advice is expected.`

// TranslationSystemPrompt sets the persona for the translation call.
const TranslationSystemPrompt = `You are an expert translator and localization specialist.

Your translations are:
- Natural and fluent (sounds like a native wrote it)
- Culturally appropriate (adapts idioms, references)
- Accurate (preserves the original meaning)
- Consistent (maintains terminology throughout)

You preserve:
- Markdown formatting
- Original structure and flow
- The author's voice and tone
- Technical terms that shouldn't be translated`

const translationTemplate = `Translate the following blog content into %s.

ORIGINAL CONTENT:
%s

TRANSLATION GUIDELINES:
1. Maintain all Markdown formatting (##, **, etc.)
2. Keep the same paragraph structure
3. Adapt idioms to natural equivalents (don't translate literally)
4. Preserve technical terms, brand names, and URLs unchanged
5. Match the tone of the original (professional, casual, etc.)

IMPORTANT:
- Do NOT add any translator notes or explanations
- Do NOT change the meaning or add new information
- Do NOT skip any sections

OUTPUT: Return ONLY the translated content in Markdown format.`

// TitleGeneration builds the brainstorming instruction. The transcript,
// if present, is truncated to TitleTranscriptLimit.
func TitleGeneration(topic, transcript, style string) string {
	section := "No transcript provided - generate titles based on topic alone."
	if strings.TrimSpace(transcript) != "" {
		section = "SOURCE TRANSCRIPT:\n" + Truncate(transcript, TitleTranscriptLimit)
	}
	return fmt.Sprintf(titleGenerationTemplate, topic, section, style)
}

// TitleSelection builds the instruction asking the model to pick exactly
// one of the candidates, verbatim. Candidates are listed numbered from 1.
func TitleSelection(candidates []string, topic, style string) string {
	var sb strings.Builder
	for i, t := range candidates {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, t)
	}
	return fmt.Sprintf(titleSelectionTemplate, strings.TrimRight(sb.String(), "\n"), topic, style)
}

// ContentGeneration builds the blog-writing instruction, choosing the
// with-transcript or no-transcript variant. The transcript, if present,
// is truncated to ContentTranscriptLimit.
func ContentGeneration(title, topic, transcript, style string) string {
	section := contentNoTranscriptSection
	if strings.TrimSpace(transcript) != "" {
		section = fmt.Sprintf(contentTranscriptSection, Truncate(transcript, ContentTranscriptLimit))
	}
	return fmt.Sprintf(contentGenerationTemplate, title, topic, style, section, style)
}

// Translation builds the translation instruction embedding the full content.
func Translation(content, targetLanguage string) string {
	return fmt.Sprintf(translationTemplate, targetLanguage, content)
}

// Truncate cuts s to at most limit characters, never splitting a rune.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
