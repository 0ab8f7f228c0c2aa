package recovery

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without attempting it.
var ErrOpen = errors.New("recovery: circuit open")

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker isolates a failing dependency. Closed passes calls through
// and counts consecutive failures; reaching the threshold opens the breaker,
// which rejects calls until the reset timeout elapses. The first call after
// the timeout runs half-open: success closes the breaker, failure reopens it.
type CircuitBreaker struct {
	threshold int
	reset     time.Duration
	now       func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
}

// BreakerOption customizes breaker behavior.
type BreakerOption func(*CircuitBreaker)

// WithBreakerClock injects a clock, used by tests to advance time.
func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(b *CircuitBreaker) {
		b.now = now
	}
}

// NewCircuitBreaker builds a closed breaker with the given failure threshold
// and reset timeout.
func NewCircuitBreaker(threshold int, reset time.Duration, opts ...BreakerOption) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if reset <= 0 {
		reset = 30 * time.Second
	}
	b := &CircuitBreaker{
		threshold: threshold,
		reset:     reset,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current breaker position, accounting for timeout expiry.
func (b *CircuitBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// Do runs fn through the breaker. When open, fn is not called and ErrOpen is
// returned immediately.
func (b *CircuitBreaker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	b.mu.Lock()
	state := b.currentState()
	if state == StateOpen {
		b.mu.Unlock()
		return ErrOpen
	}
	b.state = state
	b.mu.Unlock()

	err := fn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.threshold {
			b.state = StateOpen
			b.openedAt = b.now()
		}
		return err
	}
	b.state = StateClosed
	b.failures = 0
	return nil
}

// currentState resolves Open→HalfOpen once the reset timeout has elapsed.
// Callers must hold b.mu.
func (b *CircuitBreaker) currentState() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.reset {
		return StateHalfOpen
	}
	return b.state
}
