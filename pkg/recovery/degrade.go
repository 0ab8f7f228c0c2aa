package recovery

import (
	"context"
	"sync"
)

// Source produces a value of T, typically by calling a remote endpoint.
type Source[T any] func(ctx context.Context) (*T, error)

// Degrader runs a primary source with a fallback, retaining the last value
// either source produced. When both fail, the stale value (if any) is handed
// back alongside the error so consumers degrade gracefully instead of going
// blank.
type Degrader[T any] struct {
	mu   sync.Mutex
	last *T
}

// Do resolves a value: primary first, fallback on primary failure, last-known
// value when both fail. The returned error is nil whenever a source succeeded.
func (d *Degrader[T]) Do(ctx context.Context, primary, fallback Source[T]) (*T, error) {
	value, err := primary(ctx)
	if err != nil && fallback != nil {
		value, err = fallback(ctx)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil && value != nil {
		d.last = value
		return value, nil
	}
	return d.last, err
}

// Last returns the most recent successfully resolved value, if any.
func (d *Degrader[T]) Last() *T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
