// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transport

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// PermanentError wraps an error Retry must not retry: the underlying
// operation was rejected, not interrupted, so repeating it cannot
// succeed.
type PermanentError struct{ Err error }

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as non-retryable for Retry.
func Permanent(err error) error { return &PermanentError{Err: err} }

// Retry calls fn until it succeeds or maxAttempts is reached, sleeping
// initialDelay after the first failure and growing linearly thereafter
// (capped at maxDelay), with up to 20% jitter.
func Retry(ctx context.Context, maxAttempts int, initialDelay, maxDelay time.Duration, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var lastErr error
	delay := initialDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		var perm *PermanentError
		if errors.As(lastErr, &perm) {
			return perm.Err
		}
		if attempt == maxAttempts {
			break
		}

		sleep := delay
		if sleep > maxDelay {
			sleep = maxDelay
		}
		if sleep > 0 {
			jitter := time.Duration(rand.Int63n(int64(sleep)/5 + 1))
			sleep += jitter
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay += initialDelay
	}
	return lastErr
}
