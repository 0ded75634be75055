package blogsmith

import (
	"context"

	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
)

// Canned model responses used across tests.

const fiveTitlesResponse = `1. How to Master Remote Work in 30 Days
2. 7 Secrets Top Remote Workers Never Share
3. Why Are Remote Workers 40% More Productive?
4. The Ultimate Guide to Work-From-Home Success
5. Remote Work Revolution: Transform Your Career Today`

const blogContentResponse = `## Why Remote Work Matters

Remote work changes how teams collaborate.

## Getting Started

Start with a dedicated workspace and clear working hours.`

const translatedResponse = `## Por Que Importa el Trabajo Remoto

El trabajo remoto cambia la forma en que colaboran los equipos.`

// testCtx creates a simple test context.
func testCtx() Context {
	return NewContext(context.Background())
}

// testState returns an initial state for the given topic with defaults.
func testState(topic string) State {
	return NewState(topic, "", "", "")
}

// scriptedPipeline builds a pipeline over a stub client replaying the
// given responses, returning both for inspection.
func scriptedPipeline(t interface{ Fatal(...any) }, responses ...string) (*Pipeline, *llm.StubClient) {
	client := llm.NewStubClient(responses...)
	p, err := New(client)
	if err != nil {
		t.Fatal(err)
	}
	return p, client
}
