package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNetwork marks a backend that could not be reached.
var ErrNetwork = errors.New("network error")

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryBaseDelay is the wait before the first retry; it doubles each time.
var retryBaseDelay = 250 * time.Millisecond

// RetryWithBackoff retries fn up to 3 times with exponential backoff.
// Only errors wrapped with Retryable will trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryBaseDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// classifyNet marks transport failures as retryable ErrNetwork errors.
func classifyNet(err error) error {
	var ne net.Error
	if errors.As(err, &ne) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}
