package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
	"github.com/dialogueworks/dialogue-facilitator/pkg/retry"
)

func testProviderConfig(apiKey, baseURL string) *config.ProviderConfig {
	return &config.ProviderConfig{
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Model:     "test-model",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
		CacheTTL:  time.Minute,
	}
}

func fastRetry() retry.Policy {
	return retry.Policy{MaxRetries: 3, InitialDelay: time.Millisecond, Mode: retry.RetryServerErrors}
}

func TestAnthropicGenerateResponse_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var payload anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Content != "hello" {
			t.Fatalf("unexpected messages %+v", payload.Messages)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "hi there"}},
		})
	}))
	defer ts.Close()

	c := NewAnthropicClient(testProviderConfig("test-key", ts.URL), zap.NewNop())

	out, err := c.GenerateResponse(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi there" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestAnthropicGenerateResponse_MissingKeyFailsFast(t *testing.T) {
	c := NewAnthropicClient(testProviderConfig("", "http://127.0.0.1:1"), zap.NewNop())

	if st := c.CheckStatus(context.Background()); st.IsAvailable {
		t.Fatal("expected unavailable status without credential")
	}

	_, err := c.GenerateResponse(context.Background(), "hello", nil)
	if !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestAnthropicGenerateResponse_ServerErrorRetriesThenFails(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewAnthropicClient(testProviderConfig("test-key", ts.URL), zap.NewNop())
	c.retry = fastRetry()

	_, err := c.GenerateResponse(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected upstream status carried, got %d", pe.StatusCode)
	}
	// Initial attempt plus MaxRetries
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}
}

func TestAnthropicGenerateResponse_ClientErrorNoRetry(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer ts.Close()

	c := NewAnthropicClient(testProviderConfig("test-key", ts.URL), zap.NewNop())
	c.retry = fastRetry()

	_, err := c.GenerateResponse(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected single attempt for client error, got %d", calls)
	}
}

func TestAnthropicGenerateResponse_TransientThenSuccess(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "recovered"}},
		})
	}))
	defer ts.Close()

	c := NewAnthropicClient(testProviderConfig("test-key", ts.URL), zap.NewNop())
	c.retry = fastRetry()

	out, err := c.GenerateResponse(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "recovered" {
		t.Fatalf("unexpected output %q", out)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}
