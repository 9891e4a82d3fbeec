package ai

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/pkg/cache"
	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
	"github.com/dialogueworks/dialogue-facilitator/pkg/retry"
)

// GrokClient calls the xAI API, which speaks the OpenAI chat
// completions protocol.
type GrokClient struct {
	operations

	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
	retry     retry.Policy
	logger    *zap.Logger
}

// NewGrokClient creates a Grok client from the provided config.
func NewGrokClient(cfg *config.ProviderConfig, logger *zap.Logger) *GrokClient {
	c := &GrokClient{
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: cfg.Timeout},
		retry:     retry.Policy{MaxRetries: 3, InitialDelay: retry.Default().InitialDelay, Mode: retry.RetryServerErrors},
		logger:    logger,
	}
	c.operations = operations{
		provider: c.Name(),
		store:    cache.New(cfg.CacheTTL),
		generate: c.GenerateResponse,
	}
	return c
}

// Name returns the provider identifier
func (c *GrokClient) Name() string { return "grok" }

// CheckStatus reports provider availability without ever erroring.
func (c *GrokClient) CheckStatus(ctx context.Context) Status {
	if c.apiKey == "" {
		return Status{
			Provider:    c.Name(),
			IsAvailable: false,
			Message:     "GROK_API_KEY not configured",
		}
	}
	return Status{
		Provider:    c.Name(),
		IsAvailable: true,
		Message:     "configured",
		Models:      []string{c.model},
	}
}

// GenerateResponse sends the prompt to the xAI endpoint, retrying
// transient failures before giving up with a ProviderError.
func (c *GrokClient) GenerateResponse(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("grok: %w", ErrConfigurationMissing)
	}

	text, err := retry.DoValue(ctx, c.retry, func(ctx context.Context) (string, error) {
		return doChatCompletion(ctx, c.client, c.Name(), c.baseURL, c.apiKey, c.model, c.maxTokens, prompt, opts)
	})
	if err != nil {
		c.logger.Warn("grok generation failed",
			zap.Int("prompt_length", len(prompt)),
			zap.Error(err),
		)
		return "", err
	}
	return text, nil
}
