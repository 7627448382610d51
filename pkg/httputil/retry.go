package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. The API client wraps
// network errors, 429s, and 5xx responses with it; anything else aborts
// the request immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, fails with a non-retryable error, or
// the attempt budget is spent. The wait between attempts starts at delay
// and doubles each time. Cancelling ctx during a wait returns ctx.Err();
// otherwise the last error from fn is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff retries fn up to three times, starting at one second.
// The API client uses it for every request, which keeps retries below the
// traversal: the engine still issues a single fetch per expanded video.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func retryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
