package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrConfigurationMissing indicates a provider has no credential
// configured. Generation calls fail fast with this error instead of
// attempting network I/O; CheckStatus reports it as unavailable.
var ErrConfigurationMissing = errors.New("provider credential not configured")

// GenerateOptions tunes a single generation call. Zero values fall
// back to the client's configured defaults.
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Status is the result of a provider health probe. CheckStatus never
// returns an error; a missing credential yields IsAvailable=false.
type Status struct {
	Provider    string   `json:"provider"`
	IsAvailable bool     `json:"is_available"`
	Message     string   `json:"message"`
	Models      []string `json:"models,omitempty"`
}

// Provider is the uniform call contract over one LLM backend.
type Provider interface {
	Name() string
	CheckStatus(ctx context.Context) Status
	GenerateResponse(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)
}

// Client is a Provider plus the prompt-template operations the
// orchestration layer consumes. Every concrete client owns its own
// response cache; operations never share cached payloads across
// providers.
type Client interface {
	Provider
	ExtractThemes(ctx context.Context, text string, forceRefresh bool) (string, error)
	SummarizeText(ctx context.Context, text string, forceRefresh bool) (string, error)
	FormatTranscript(ctx context.Context, text string, forceRefresh bool) (string, error)
}

// ProviderError carries the upstream status and message after a
// generation call fails for good (retries exhausted or non-retryable).
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// HTTPStatusCode implements retry.StatusCoder so the retry policy can
// distinguish server errors from client errors.
func (e *ProviderError) HTTPStatusCode() int { return e.StatusCode }
