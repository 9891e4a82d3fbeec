package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Mode selects which errors a Policy treats as retryable.
type Mode int

const (
	// RetryAll retries on any error returned by the operation.
	RetryAll Mode = iota
	// RetryServerErrors retries only on 5xx-class and network errors;
	// client errors fail immediately.
	RetryServerErrors
)

// Policy wraps a fallible operation with exponential backoff.
// The delay doubles on each attempt (1s, 2s, 4s, ...). There is no
// wall-clock cap beyond the attempt count; callers needing a hard
// timeout wrap the whole call in a context deadline.
type Policy struct {
	MaxRetries   uint64
	InitialDelay time.Duration
	Mode         Mode
}

// Default returns the standard policy: 3 retries, 1s initial delay,
// retry on any error.
func Default() Policy {
	return Policy{MaxRetries: 3, InitialDelay: time.Second, Mode: RetryAll}
}

// StatusCoder is implemented by errors that carry an upstream HTTP status.
type StatusCoder interface {
	HTTPStatusCode() int
}

// Do runs op until it succeeds or the policy's retries are exhausted.
// The operation runs MaxRetries+1 times at most; the final attempt's
// error is returned wrapped.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 10 * time.Minute
	bo.MaxElapsedTime = 0

	attempt := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.Mode == RetryServerErrors && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, p.MaxRetries), ctx))
	if err != nil {
		return fmt.Errorf("retries exhausted: %w", err)
	}
	return nil
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// IsRetryable reports whether an error looks transient: 5xx upstream
// statuses, rate limits, and network-level failures. Client errors
// (4xx other than 429) are not retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		code := sc.HTTPStatusCode()
		if code == 429 {
			return true
		}
		return code >= 500 || code == 0
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
