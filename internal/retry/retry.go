// Package retry runs a fallible operation under a bounded attempt policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// ErrAttemptsExhausted is returned (wrapping the last failure) when every
// attempt allowed by the policy has failed.
var ErrAttemptsExhausted = errors.New("retry: attempts exhausted")

// Policy bounds a retried operation.
type Policy struct {
	// MaxAttempts is the total number of tries, first one included.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Delay is the pause between attempts. Zero retries immediately.
	Delay time.Duration
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) backoff() goretry.Backoff {
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	constant := goretry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	})
	return goretry.WithMaxRetries(uint64(p.attempts()-1), constant)
}

// Do runs op until it succeeds or the policy is exhausted. attempt is
// 1-based. onFailure, if set, observes every failed attempt. Cancelling ctx
// stops further attempts and returns the context error.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error), onFailure func(attempt int, err error)) (T, error) {
	var (
		zero    T
		result  T
		attempt int
		lastErr error
	)

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	err := goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempt++
		v, err := op(ctx, attempt)
		if err != nil {
			lastErr = err
			if onFailure != nil {
				onFailure(attempt, err)
			}
			return goretry.RetryableError(err)
		}
		result = v
		return nil
	})
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}
	return zero, fmt.Errorf("%w after %d attempt(s): %w", ErrAttemptsExhausted, attempt, lastErr)
}
