package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/pkg/cache"
	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
	"github.com/dialogueworks/dialogue-facilitator/pkg/retry"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	operations

	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
	retry     retry.Policy
	logger    *zap.Logger
}

// anthropicRequest is the shape for Messages API requests
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is a minimal response shape
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicClient creates an Anthropic client from the provided
// config. A missing API key yields a disabled client: status reports
// unavailable and generation fails fast without network I/O.
func NewAnthropicClient(cfg *config.ProviderConfig, logger *zap.Logger) *AnthropicClient {
	c := &AnthropicClient{
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
func (c *AnthropicClient) Name() string { return "anthropic" }

// CheckStatus reports provider availability. It never returns an
// error; a missing credential is reported as unavailable.
func (c *AnthropicClient) CheckStatus(ctx context.Context) Status {
	if c.apiKey == "" {
		return Status{
			Provider:    c.Name(),
			IsAvailable: false,
			Message:     "ANTHROPIC_API_KEY not configured",
		}
	}
	return Status{
		Provider:    c.Name(),
		IsAvailable: true,
		Message:     "configured",
		Models:      []string{c.model},
	}
}

// GenerateResponse sends the prompt to the Messages API, retrying
// transient failures before giving up with a ProviderError.
func (c *AnthropicClient) GenerateResponse(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("anthropic: %w", ErrConfigurationMissing)
	}

	text, err := retry.DoValue(ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.doGenerate(ctx, prompt, opts)
	})
	if err != nil {
		c.logger.Warn("anthropic generation failed",
			zap.Int("prompt_length", len(prompt)),
			zap.Error(err),
		)
		return "", err
	}
	return text, nil
}

func (c *AnthropicClient) doGenerate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	model := c.model
	maxTokens := c.maxTokens
	temperature := 0.7
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
		if opts.Temperature > 0 {
			temperature = opts.Temperature
		}
	}

	reqBody := anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		buf, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    string(buf),
		}
	}

	var ar anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(ar.Content) == 0 {
		return "", &ProviderError{Provider: c.Name(), Message: "empty response content"}
	}
	return ar.Content[0].Text, nil
}
