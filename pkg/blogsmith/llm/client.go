// Package llm defines the language-model client the pipeline depends on,
// with an OpenAI-compatible implementation and a scripted stub for tests.
package llm

import "context"

// Client is the capability the pipeline consumes: one synchronous
// completion call. Implementations own timeouts and transport concerns;
// the pipeline never retries.
type Client interface {
	// Invoke sends a system and user instruction to the model and returns
	// the generated text. Temperature controls sampling randomness.
	Invoke(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Settings configures a concrete client implementation.
type Settings struct {
	// Provider selects the implementation ("openai" or "mock").
	Provider string
	// Model is the model or deployment name.
	Model string
	// APIKey authenticates against the provider.
	APIKey string
	// BaseURL overrides the provider endpoint. Required for
	// OpenAI-compatible gateways, optional for openai.com.
	BaseURL string
}
