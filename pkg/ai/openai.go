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

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	operations

	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
	retry     retry.Policy
	logger    *zap.Logger
}

// chatRequest is the shape for chat completion requests. Grok exposes
// the same wire format, so GrokClient reuses these types.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is a minimal response shape
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates an OpenAI client from the provided config.
func NewOpenAIClient(cfg *config.ProviderConfig, logger *zap.Logger) *OpenAIClient {
	c := &OpenAIClient{
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
func (c *OpenAIClient) Name() string { return "openai" }

// CheckStatus reports provider availability without ever erroring.
func (c *OpenAIClient) CheckStatus(ctx context.Context) Status {
	if c.apiKey == "" {
		return Status{
			Provider:    c.Name(),
			IsAvailable: false,
			Message:     "OPENAI_API_KEY not configured",
		}
	}
	return Status{
		Provider:    c.Name(),
		IsAvailable: true,
		Message:     "configured",
		Models:      []string{c.model},
	}
}

// GenerateResponse sends the prompt to the chat completions endpoint,
// retrying transient failures before giving up with a ProviderError.
func (c *OpenAIClient) GenerateResponse(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai: %w", ErrConfigurationMissing)
	}

	text, err := retry.DoValue(ctx, c.retry, func(ctx context.Context) (string, error) {
		return doChatCompletion(ctx, c.client, c.Name(), c.baseURL, c.apiKey, c.model, c.maxTokens, prompt, opts)
	})
	if err != nil {
		c.logger.Warn("openai generation failed",
			zap.Int("prompt_length", len(prompt)),
			zap.Error(err),
		)
		return "", err
	}
	return text, nil
}

// doChatCompletion issues one OpenAI-compatible chat completion call.
// Shared with GrokClient, which speaks the same protocol.
func doChatCompletion(ctx context.Context, client *http.Client, provider, baseURL, apiKey, model string, maxTokens int, prompt string, opts *GenerateOptions) (string, error) {
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

	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		buf, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ProviderError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Message:    string(buf),
		}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &ProviderError{Provider: provider, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(cr.Choices) == 0 {
		return "", &ProviderError{Provider: provider, Message: "empty choices in response"}
	}
	return cr.Choices[0].Message.Content, nil
}
