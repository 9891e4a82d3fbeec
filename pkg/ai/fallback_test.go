package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

// stubClient is a canned-response Client for fallback tests.
type stubClient struct {
	name      string
	available bool
	response  string
	err       error
	calls     int
}

func (s *stubClient) Name() string { return s.name }

func (s *stubClient) CheckStatus(ctx context.Context) Status {
	return Status{Provider: s.name, IsAvailable: s.available}
}

func (s *stubClient) GenerateResponse(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) ExtractThemes(ctx context.Context, text string, forceRefresh bool) (string, error) {
	return s.GenerateResponse(ctx, text, nil)
}

func (s *stubClient) SummarizeText(ctx context.Context, text string, forceRefresh bool) (string, error) {
	return s.GenerateResponse(ctx, text, nil)
}

func (s *stubClient) FormatTranscript(ctx context.Context, text string, forceRefresh bool) (string, error) {
	return s.GenerateResponse(ctx, text, nil)
}

func TestFallback_FirstProviderWins(t *testing.T) {
	primary := &stubClient{name: "primary", available: true, response: "from primary"}
	secondary := &stubClient{name: "secondary", available: true, response: "from secondary"}
	f := NewFallback(zap.NewNop(), primary, secondary)

	out, err := f.GenerateResponse(context.Background(), "prompt", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from primary" {
		t.Fatalf("unexpected output %q", out)
	}
	if secondary.calls != 0 {
		t.Fatal("secondary must not be called when primary succeeds")
	}
}

func TestFallback_AdvancesOnProviderError(t *testing.T) {
	primary := &stubClient{
		name:      "primary",
		available: true,
		err:       &ProviderError{Provider: "primary", StatusCode: 502, Message: "down"},
	}
	secondary := &stubClient{name: "secondary", available: true, response: "from secondary"}
	f := NewFallback(zap.NewNop(), primary, secondary)

	out, err := f.GenerateResponse(context.Background(), "prompt", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from secondary" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFallback_AdvancesPastUnconfiguredProvider(t *testing.T) {
	primary := &stubClient{
		name: "primary",
		err:  fmt.Errorf("primary: %w", ErrConfigurationMissing),
	}
	secondary := &stubClient{name: "secondary", available: true, response: "ok"}
	f := NewFallback(zap.NewNop(), primary, secondary)

	out, err := f.ExtractThemes(context.Background(), "text", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFallback_AllProvidersFail(t *testing.T) {
	primary := &stubClient{
		name: "primary",
		err:  &ProviderError{Provider: "primary", StatusCode: 500, Message: "down"},
	}
	secondary := &stubClient{
		name: "secondary",
		err:  &ProviderError{Provider: "secondary", StatusCode: 503, Message: "also down"},
	}
	f := NewFallback(zap.NewNop(), primary, secondary)

	_, err := f.GenerateResponse(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Provider != "secondary" {
		t.Fatalf("expected last provider's error, got %s", pe.Provider)
	}
}

func TestFallback_NonProviderErrorStopsChain(t *testing.T) {
	primary := &stubClient{name: "primary", available: true, err: errors.New("programming error")}
	secondary := &stubClient{name: "secondary", available: true, response: "should not run"}
	f := NewFallback(zap.NewNop(), primary, secondary)

	_, err := f.GenerateResponse(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if secondary.calls != 0 {
		t.Fatal("chain must stop on non-provider errors")
	}
}

func TestFallback_CheckStatusAggregates(t *testing.T) {
	f := NewFallback(zap.NewNop(),
		&stubClient{name: "a", available: false},
		&stubClient{name: "b", available: true},
	)
	if st := f.CheckStatus(context.Background()); !st.IsAvailable {
		t.Fatal("expected available when any provider is configured")
	}

	none := NewFallback(zap.NewNop(), &stubClient{name: "a", available: false})
	if st := none.CheckStatus(context.Background()); st.IsAvailable {
		t.Fatal("expected unavailable when no provider is configured")
	}
}
