package recovery

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy retries a failing call with multiplicative backoff.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy matches the platform defaults: three attempts starting
// at one second, doubling between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

type unretryableError struct {
	err error
}

func (e *unretryableError) Error() string { return e.err.Error() }
func (e *unretryableError) Unwrap() error { return e.err }

// Unretryable marks an error so the retry policy fails immediately instead of
// re-attempting. Application-level rejections use this; transient transport
// failures do not.
func Unretryable(err error) error {
	if err == nil {
		return nil
	}
	return &unretryableError{err: err}
}

// IsUnretryable reports whether err carries the unretryable marker.
func IsUnretryable(err error) bool {
	var marker *unretryableError
	return errors.As(err, &marker)
}

// Do runs fn until it succeeds, the attempts are exhausted, the error is
// unretryable, or the context is canceled. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := p.BaseDelay
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if IsUnretryable(err) || attempt == attempts {
			return err
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay = time.Duration(float64(delay) * multiplier)
		}
	}
	return err
}
