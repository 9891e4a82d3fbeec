package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/dialogueworks/dialogue-facilitator/pkg/cache"
)

// Cache namespaces, one per operation.
const (
	opExtractThemes    = "extract_themes"
	opSummarizeText    = "summarize_text"
	opFormatTranscript = "format_transcript"
)

// Minimum input lengths below which an operation short-circuits with a
// sentinel instead of hitting the network.
const (
	minThemesInput  = 50
	minSummaryInput = 100
	minFormatInput  = 20
)

// Sentinel results for inputs below the operation threshold.
const (
	ThemesTooShort  = "Not enough conversation yet to extract themes."
	SummaryTooShort = "Not enough content to summarize yet."
)

// ParseForceRefresh normalizes the forceRefresh flag at the boundary.
// Callers upstream send either a JSON boolean or the literal string
// "true"; everything inward of this function is a strict bool.
func ParseForceRefresh(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(strings.TrimSpace(val), "true")
	default:
		return false
	}
}

// operations implements the prompt-template helpers shared by all
// provider clients. Each client embeds one with its own cache store,
// so cached payloads stay provider-local.
type operations struct {
	provider string
	store    *cache.Store
	generate func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)
}

// ExtractThemes pulls the main discussion themes out of a transcript.
func (o *operations) ExtractThemes(ctx context.Context, text string, forceRefresh bool) (string, error) {
	if len(strings.TrimSpace(text)) < minThemesInput {
		return ThemesTooShort, nil
	}
	if payload, ok := o.store.Get(opExtractThemes, text, forceRefresh); ok {
		return payload, nil
	}

	prompt := fmt.Sprintf(`Identify the main themes in this conversation excerpt. For each theme give a short name and one sentence on how it showed up in the conversation.

Conversation:
%s`, text)

	out, err := o.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	o.store.Set(opExtractThemes, text, out)
	return out, nil
}

// SummarizeText produces a short prose summary of the given text.
func (o *operations) SummarizeText(ctx context.Context, text string, forceRefresh bool) (string, error) {
	if len(strings.TrimSpace(text)) < minSummaryInput {
		return SummaryTooShort, nil
	}
	if payload, ok := o.store.Get(opSummarizeText, text, forceRefresh); ok {
		return payload, nil
	}

	prompt := fmt.Sprintf(`Summarize the following conversation in 3-4 sentences, keeping the participants' own framing where possible.

Conversation:
%s`, text)

	out, err := o.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	o.store.Set(opSummarizeText, text, out)
	return out, nil
}

// FormatTranscript cleans up raw speech-to-text output: punctuation,
// casing, filler words. Inputs below the threshold are returned as-is.
func (o *operations) FormatTranscript(ctx context.Context, text string, forceRefresh bool) (string, error) {
	if len(strings.TrimSpace(text)) < minFormatInput {
		return text, nil
	}
	if payload, ok := o.store.Get(opFormatTranscript, text, forceRefresh); ok {
		return payload, nil
	}

	prompt := fmt.Sprintf(`Clean up this raw speech transcript: fix punctuation and casing, remove filler words, keep the speaker's meaning and wording intact. Return only the cleaned text.

Transcript:
%s`, text)

	out, err := o.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	o.store.Set(opFormatTranscript, text, out)
	return out, nil
}
