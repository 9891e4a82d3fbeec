package participant

import (
	"context"

	"github.com/dialogueworks/dialogue-facilitator/pkg/ai"
)

// Enhancement is the outcome of cleaning up a raw transcript chunk.
type Enhancement struct {
	Enhanced     string
	Improvements []string
	Service      string
}

// Enhancer cleans up raw speech-to-text output before analysis. A
// failed enhancement is non-fatal to contribution processing.
type Enhancer interface {
	Enhance(ctx context.Context, raw string) (Enhancement, error)
}

// ProviderEnhancer formats transcripts through an AI client.
type ProviderEnhancer struct {
	client ai.Client
}

// NewProviderEnhancer creates a ProviderEnhancer
func NewProviderEnhancer(client ai.Client) *ProviderEnhancer {
	return &ProviderEnhancer{client: client}
}

// Enhance asks the provider to clean up the raw text. Responses are
// cached by the underlying client, so repeated chunks cost one call.
func (e *ProviderEnhancer) Enhance(ctx context.Context, raw string) (Enhancement, error) {
	formatted, err := e.client.FormatTranscript(ctx, raw, false)
	if err != nil {
		return Enhancement{}, err
	}
	return Enhancement{
		Enhanced:     formatted,
		Improvements: []string{"formatting", "punctuation"},
		Service:      e.client.Name(),
	}, nil
}
