package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastPolicy(mode Mode) Policy {
	return Policy{MaxRetries: 3, InitialDelay: time.Millisecond, Mode: mode}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := fastPolicy(RetryAll).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	err := fastPolicy(RetryAll).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("always failing")
	})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	// MaxRetries additional attempts on top of the initial call
	if calls != 4 {
		t.Fatalf("expected 4 calls, got %d", calls)
	}
}

type statusErr struct{ code int }

func (e *statusErr) Error() string       { return fmt.Sprintf("upstream status %d", e.code) }
func (e *statusErr) HTTPStatusCode() int { return e.code }

func TestDo_ServerErrorMode_ClientErrorFailsFast(t *testing.T) {
	calls := 0
	err := fastPolicy(RetryServerErrors).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &statusErr{code: 400}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected single call for client error, got %d", calls)
	}
}

func TestDo_ServerErrorMode_ServerErrorRetries(t *testing.T) {
	calls := 0
	err := fastPolicy(RetryServerErrors).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return &statusErr{code: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoValue_ReturnsValue(t *testing.T) {
	calls := 0
	v, err := DoValue(context.Background(), fastPolicy(RetryAll), func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("blip")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "ok" {
		t.Fatalf("expected ok, got %q", v)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&statusErr{code: 500}, true},
		{&statusErr{code: 429}, true},
		{&statusErr{code: 404}, false},
		{errors.New("connection refused"), true},
		{errors.New("rate limit exceeded"), true},
		{errors.New("invalid request body"), false},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
