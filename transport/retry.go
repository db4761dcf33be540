package transport

import (
	"context"
	"time"

	"github.com/campusfound/campusfound-go/apierror"
)

// Policy controls the retry executor. MaxAttempts counts total tries
// including the first; Retryable decides, per classified failure, whether
// another attempt is worthwhile. The zero value degrades to a single attempt.
type Policy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	BackoffFactor float64
	Retryable     func(*apierror.Record) bool
}

// NoRetryPolicy is the default: one attempt, no delays.
func NoRetryPolicy() Policy {
	return Policy{MaxAttempts: 1}
}

// StandardPolicy retries network and timeout failures up to three times
// beyond the first attempt, with delays of 1s, 2s, and 4s between attempts.
func StandardPolicy() Policy {
	return Policy{
		MaxAttempts:   4,
		InitialDelay:  time.Second,
		BackoffFactor: 2,
		Retryable:     apierror.DefaultRetryable,
	}
}

// sleep is replaced in tests to observe delays without waiting them out.
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DoWithRetry invokes op under policy. Attempts are 1-based; after a failed
// attempt the failure is classified and, when policy.Retryable accepts it and
// attempts remain, the executor suspends for the current delay and multiplies
// it by the backoff factor. A terminal failure — non-retryable, or the final
// attempt — is returned immediately without a further delay, unchanged.
func DoWithRetry[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := policy.InitialDelay
	factor := policy.BackoffFactor
	if factor <= 0 {
		factor = 1
	}

	for attempt := 1; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		rec := apierror.AsRecord(err)
		if attempt == attempts || policy.Retryable == nil || !policy.Retryable(rec) {
			return zero, err
		}

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay = time.Duration(float64(delay) * factor)
	}
}
