package ai

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Fallback chains multiple provider clients in priority order. Each
// call goes to the first configured provider; on a provider failure
// the next one in the chain is tried. Caches stay with the underlying
// clients, so a fallback hop never reuses another provider's payloads.
type Fallback struct {
	clients []Client
	logger  *zap.Logger
}

// NewFallback builds a chain over the given clients, in order.
func NewFallback(logger *zap.Logger, clients ...Client) *Fallback {
	return &Fallback{clients: clients, logger: logger}
}

// Name returns the provider identifier
func (f *Fallback) Name() string { return "fallback" }

// CheckStatus reports available if any chained provider is available.
func (f *Fallback) CheckStatus(ctx context.Context) Status {
	var models []string
	available := false
	for _, c := range f.clients {
		st := c.CheckStatus(ctx)
		if st.IsAvailable {
			available = true
			models = append(models, st.Models...)
		}
	}
	msg := "no provider configured"
	if available {
		msg = "at least one provider configured"
	}
	return Status{
		Provider:    f.Name(),
		IsAvailable: available,
		Message:     msg,
		Models:      models,
	}
}

// GenerateResponse tries each provider until one succeeds.
func (f *Fallback) GenerateResponse(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	return f.attempt(ctx, func(c Client) (string, error) {
		return c.GenerateResponse(ctx, prompt, opts)
	})
}

// ExtractThemes tries each provider's theme operation until one succeeds.
func (f *Fallback) ExtractThemes(ctx context.Context, text string, forceRefresh bool) (string, error) {
	return f.attempt(ctx, func(c Client) (string, error) {
		return c.ExtractThemes(ctx, text, forceRefresh)
	})
}

// SummarizeText tries each provider's summary operation until one succeeds.
func (f *Fallback) SummarizeText(ctx context.Context, text string, forceRefresh bool) (string, error) {
	return f.attempt(ctx, func(c Client) (string, error) {
		return c.SummarizeText(ctx, text, forceRefresh)
	})
}

// FormatTranscript tries each provider's formatting operation until one succeeds.
func (f *Fallback) FormatTranscript(ctx context.Context, text string, forceRefresh bool) (string, error) {
	return f.attempt(ctx, func(c Client) (string, error) {
		return c.FormatTranscript(ctx, text, forceRefresh)
	})
}

func (f *Fallback) attempt(ctx context.Context, call func(Client) (string, error)) (string, error) {
	var lastErr error
	for _, c := range f.clients {
		out, err := call(c)
		if err == nil {
			return out, nil
		}
		lastErr = err

		var pe *ProviderError
		if errors.Is(err, ErrConfigurationMissing) || errors.As(err, &pe) {
			f.logger.Warn("provider failed, trying next in chain",
				zap.String("provider", c.Name()),
				zap.Error(err),
			)
			continue
		}
		// Not a provider-level failure; do not mask it by failing over.
		return "", err
	}
	if lastErr == nil {
		return "", fmt.Errorf("fallback: %w", ErrConfigurationMissing)
	}
	return "", lastErr
}
