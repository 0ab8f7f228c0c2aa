package console

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"
)

// ErrPanelClosed is returned by operations on a closed panel.
var ErrPanelClosed = errors.New("console: panel is closed")

// FetchFunc loads the panel's resource. On failure it may still return a
// partial value alongside the error; whether that value is adopted is decided
// by the panel (see WithPartialAdoption).
type FetchFunc[T any] func(ctx context.Context) (*T, error)

// Snapshot is the externally visible state of a panel at a point in time.
// Data is never cleared by a failed refresh: a failing poll keeps the last
// good value and only updates Err.
type Snapshot[T any] struct {
	Data        *T
	Err         string
	Loading     bool
	LastFetched time.Time
	Seq         uint64
}

// HasData reports whether any fetch (or seed) has ever populated the panel.
func (s Snapshot[T]) HasData() bool { return s.Data != nil }

// Stale reports whether the snapshot shows an error while retaining data from
// an earlier successful fetch.
func (s Snapshot[T]) Stale() bool { return s.Data != nil && s.Err != "" }

// Panel owns one fetched resource and its refresh lifecycle: initial load,
// manual refresh, interval polling, and teardown. At most one interval timer
// is live per panel; arming a new one always stops the previous timer first.
type Panel[T any] struct {
	code      string
	fetch     FetchFunc[T]
	policy    PollingPolicy
	hook      RefreshHook
	telemetry Telemetry

	adoptPartial bool
	staleGuard   bool
	seeded       bool

	mu     sync.Mutex
	snap   Snapshot[T]
	issued uint64
	closed bool
	cancel context.CancelFunc
	ticker *time.Ticker
}

// PanelOption customizes panel construction.
type PanelOption[T any] func(*Panel[T])

// WithSeed starts the panel in loaded state; no fetch is issued on Start.
func WithSeed[T any](seed *T) PanelOption[T] {
	return func(p *Panel[T]) {
		p.snap.Data = seed
		p.snap.LastFetched = time.Now()
		p.seeded = seed != nil
	}
}

// WithPolicy sets the polling policy (default: polling disabled).
func WithPolicy[T any](policy PollingPolicy) PanelOption[T] {
	return func(p *Panel[T]) {
		p.policy = policy
	}
}

// WithPartialAdoption makes the panel adopt a partial payload returned
// alongside an application-level failure instead of discarding it. The system
// health panel uses this; every other panel keeps its previous data untouched
// on any failure.
func WithPartialAdoption[T any]() PanelOption[T] {
	return func(p *Panel[T]) {
		p.adoptPartial = true
	}
}

// WithoutStaleGuard disables the sequence-number guard, restoring
// last-write-wins semantics for overlapping refreshes.
func WithoutStaleGuard[T any]() PanelOption[T] {
	return func(p *Panel[T]) {
		p.staleGuard = false
	}
}

// WithPanelHook wires a refresh hook notified on every snapshot transition.
func WithPanelHook[T any](hook RefreshHook) PanelOption[T] {
	return func(p *Panel[T]) {
		p.hook = hook
	}
}

// WithPanelTelemetry wires a telemetry recorder.
func WithPanelTelemetry[T any](t Telemetry) PanelOption[T] {
	return func(p *Panel[T]) {
		p.telemetry = t
	}
}

// NewPanel builds a panel around a fetch function.
func NewPanel[T any](code string, fetch FetchFunc[T], opts ...PanelOption[T]) *Panel[T] {
	p := &Panel[T]{
		code:       code,
		fetch:      fetch,
		staleGuard: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.hook = normalizeRefreshHook(p.hook)
	p.telemetry = normalizeTelemetry(p.telemetry)
	return p
}

// Code returns the panel's definition code.
func (p *Panel[T]) Code() string { return p.code }

// Snapshot returns a copy of the current panel state.
func (p *Panel[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Seeded reports whether the panel was constructed with seed data.
func (p *Panel[T]) Seeded() bool { return p.seeded }

// Start performs the initial load (skipped for seeded panels) and arms the
// interval timer according to the polling policy. Calling Start again re-arms
// the timer; the previous one is always stopped first.
func (p *Panel[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPanelClosed
	}
	seeded := p.seeded
	p.mu.Unlock()

	var err error
	if !seeded {
		err = p.Refresh(ctx, false)
	}
	p.arm(ctx)
	return err
}

// Refresh issues the underlying request. On success the snapshot's data is
// replaced and its error cleared; on failure the error is recorded and the
// previous data retained. A non-silent refresh shows the loading flag while
// the request is in flight.
func (p *Panel[T]) Refresh(ctx context.Context, silent bool) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPanelClosed
	}
	p.issued++
	seq := p.issued
	if !silent {
		p.snap.Loading = true
	}
	p.mu.Unlock()

	data, err := p.fetch(ctx)

	p.mu.Lock()
	if p.closed || ctx.Err() != nil {
		// A canceled refresh never mutates data, but it must not leave a
		// live panel stuck in the loading state it set itself.
		if !p.closed && seq == p.issued {
			p.snap.Loading = false
		}
		p.mu.Unlock()
		return err
	}
	if p.staleGuard && seq != p.issued {
		// A newer refresh was issued while this one was in flight; its
		// result supersedes ours, including the loading flag.
		p.mu.Unlock()
		return err
	}
	if err == nil && silent && !p.snap.Loading && p.snap.Err == "" &&
		p.snap.HasData() && reflect.DeepEqual(p.snap.Data, data) {
		// Unchanged silent poll: keep the snapshot byte-stable so consumers
		// diffing snapshots see no churn between identical responses.
		p.mu.Unlock()
		return nil
	}
	p.snap.Loading = false
	p.snap.Seq = seq
	reason := "refresh"
	if err != nil {
		p.snap.Err = err.Error()
		reason = "error"
		if p.adoptPartial && data != nil {
			p.snap.Data = data
			p.snap.LastFetched = time.Now()
		}
	} else {
		p.snap.Data = data
		p.snap.Err = ""
		p.snap.LastFetched = time.Now()
	}
	event := PanelEvent{PanelCode: p.code, Reason: reason, At: time.Now()}
	if err != nil {
		event.Message = err.Error()
	}
	p.mu.Unlock()

	_ = p.hook.PanelUpdated(ctx, event)
	if err != nil {
		p.telemetry.Record(ctx, "console.panel.refresh_error", map[string]any{
			"panel": p.code,
			"error": err.Error(),
		})
	}
	return err
}

// SetPolicy replaces the polling policy. The timer is re-armed on the next
// Start; an interval of zero stops background refresh entirely.
func (p *Panel[T]) SetPolicy(policy PollingPolicy) {
	p.mu.Lock()
	p.policy = policy
	p.mu.Unlock()
}

// Close tears the panel down: the interval timer is stopped and in-flight
// refreshes are canceled. A canceled refresh never mutates the snapshot.
func (p *Panel[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.stopTickerLocked()
}

func (p *Panel[T]) arm(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTickerLocked()
	if p.closed || !p.policy.Enabled || p.policy.Interval <= 0 {
		return
	}
	tickCtx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(p.policy.Interval)
	silent := p.policy.Silent
	p.cancel = cancel
	p.ticker = ticker
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				_ = p.Refresh(tickCtx, silent)
			}
		}
	}()
}

// stopTickerLocked stops the live timer, if any. Callers must hold p.mu.
func (p *Panel[T]) stopTickerLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
}
