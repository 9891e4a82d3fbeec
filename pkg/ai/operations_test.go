package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dialogueworks/dialogue-facilitator/pkg/cache"
)

const longTranscript = "We talked at length about renewable energy in our neighborhood, " +
	"how the community garden brings people together, and what the school could do differently."

func newTestOperations(generate func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)) *operations {
	return &operations{
		provider: "test",
		store:    cache.New(time.Minute),
		generate: generate,
	}
}

func TestExtractThemes_CachesResult(t *testing.T) {
	calls := 0
	ops := newTestOperations(func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
		calls++
		return "Theme: community", nil
	})

	first, err := ops.ExtractThemes(context.Background(), longTranscript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ops.ExtractThemes(context.Background(), longTranscript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("cached payload differs: %q vs %q", first, second)
	}
	if calls != 1 {
		t.Fatalf("expected 1 network call, got %d", calls)
	}
}

func TestExtractThemes_ForceRefreshInvalidates(t *testing.T) {
	calls := 0
	ops := newTestOperations(func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
		calls++
		return "fresh", nil
	})

	if _, err := ops.ExtractThemes(context.Background(), longTranscript, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ops.ExtractThemes(context.Background(), longTranscript, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("forceRefresh must always invoke the provider, got %d calls", calls)
	}
}

func TestExtractThemes_TooShortSkipsNetwork(t *testing.T) {
	ops := newTestOperations(func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
		t.Fatal("provider must not be called for short input")
		return "", nil
	})

	out, err := ops.ExtractThemes(context.Background(), "hi", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != ThemesTooShort {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func TestSummarizeText_TooShortSkipsNetwork(t *testing.T) {
	ops := newTestOperations(func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
		t.Fatal("provider must not be called for short input")
		return "", nil
	})

	out, err := ops.SummarizeText(context.Background(), "short text", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != SummaryTooShort {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func TestFormatTranscript_TooShortReturnsInput(t *testing.T) {
	ops := newTestOperations(func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
		t.Fatal("provider must not be called for short input")
		return "", nil
	})

	out, err := ops.FormatTranscript(context.Background(), "um hi", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "um hi" {
		t.Fatalf("expected input passthrough, got %q", out)
	}
}

func TestFormatTranscript_PromptCarriesInput(t *testing.T) {
	var seenPrompt string
	ops := newTestOperations(func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
		seenPrompt = prompt
		return "cleaned", nil
	})

	if _, err := ops.FormatTranscript(context.Background(), longTranscript, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(seenPrompt, longTranscript) {
		t.Fatal("prompt must embed the raw transcript")
	}
}

func TestParseForceRefresh(t *testing.T) {
	cases := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"false", false},
		{"yes", false},
		{nil, false},
		{1, false},
	}
	for _, tc := range cases {
		if got := ParseForceRefresh(tc.in); got != tc.want {
			t.Errorf("ParseForceRefresh(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
