package retry

import (
	"context"
	"errors"
	"time"
)

// retryAfterer is implemented by errors that carry a server-suggested delay.
type retryAfterer interface {
	RetryAfter() time.Duration
}

// retryAfterFromError extracts the suggested delay from err.
// Returns 0 if no error in the chain carries one.
func retryAfterFromError(err error) time.Duration {
	var ra retryAfterer
	if errors.As(err, &ra) {
		return ra.RetryAfter()
	}
	return 0
}

// effectiveDelay returns the delay to use, honoring the error's RetryAfter if larger.
func effectiveDelay(configuredDelay time.Duration, err error) time.Duration {
	serverDelay := retryAfterFromError(err)
	if serverDelay > configuredDelay {
		return serverDelay
	}
	return configuredDelay
}

// Do executes the given function with retry logic.
// It stops waiting when ctx ends during a backoff.
// Returns the result on success, or the last error fn returned otherwise.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := max(cfg.MaxAttempts, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < attempts-1 {
			delay := effectiveDelay(cfg.Delay(attempt), err)

			select {
			case <-ctx.Done():
				return zero, lastErr
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}
