package recovery

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := NewCircuitBreaker(3, time.Minute)
	boom := errors.New("boom")
	fail := func(context.Context) error { return boom }

	for i := 0; i < 3; i++ {
		if err := b.Do(context.Background(), fail); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i, err)
		}
	}
	if b.State() != StateOpen {
		t.Fatalf("expected open after threshold, got %s", b.State())
	}
	calls := 0
	err := b.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open breaker must not invoke the call")
	}
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	b := NewCircuitBreaker(1, 30*time.Second, WithBreakerClock(clock))

	if err := b.Do(context.Background(), func(context.Context) error { return errors.New("down") }); err == nil {
		t.Fatalf("expected failure")
	}
	if b.State() != StateOpen {
		t.Fatalf("expected open, got %s", b.State())
	}

	now = now.Add(31 * time.Second)
	if b.State() != StateHalfOpen {
		t.Fatalf("expected half-open after reset timeout, got %s", b.State())
	}
	if err := b.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("half-open success: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("expected closed after half-open success, got %s", b.State())
	}
}

func TestBreakerHalfOpenReopensOnFailure(t *testing.T) {
	now := time.Now()
	b := NewCircuitBreaker(1, 10*time.Second, WithBreakerClock(func() time.Time { return now }))

	_ = b.Do(context.Background(), func(context.Context) error { return errors.New("down") })
	now = now.Add(11 * time.Second)
	_ = b.Do(context.Background(), func(context.Context) error { return errors.New("still down") })
	if b.State() != StateOpen {
		t.Fatalf("expected reopened breaker, got %s", b.State())
	}
	if err := b.Do(context.Background(), func(context.Context) error { return nil }); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen immediately after reopen, got %v", err)
	}
}

func TestRetryStopsOnSuccess(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond, Multiplier: 2}
	calls := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestRetryHonorsUnretryable(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond}
	calls := 0
	rejected := errors.New("rejected")
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		return Unretryable(rejected)
	})
	if !errors.Is(err, rejected) {
		t.Fatalf("expected wrapped rejection, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("unretryable errors must not be re-attempted, got %d calls", calls)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 10, BaseDelay: 50 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		cancel()
	}()
	err := policy.Do(ctx, func(context.Context) error {
		calls++
		return errors.New("down")
	})
	if !errors.Is(err, context.Canceled) && err == nil {
		t.Fatalf("expected cancellation or failure, got %v", err)
	}
	if calls > 2 {
		t.Fatalf("expected early stop, got %d calls", calls)
	}
}

func TestDegraderFallsBackAndRetainsLast(t *testing.T) {
	var d Degrader[int]
	value := 42
	got, err := d.Do(context.Background(),
		func(context.Context) (*int, error) { return nil, errors.New("primary down") },
		func(context.Context) (*int, error) { return &value, nil },
	)
	if err != nil || got == nil || *got != 42 {
		t.Fatalf("expected fallback value, got %v err %v", got, err)
	}

	got, err = d.Do(context.Background(),
		func(context.Context) (*int, error) { return nil, errors.New("primary down") },
		func(context.Context) (*int, error) { return nil, errors.New("fallback down") },
	)
	if err == nil {
		t.Fatalf("expected error when both sources fail")
	}
	if got == nil || *got != 42 {
		t.Fatalf("expected stale value retained, got %v", got)
	}
}
