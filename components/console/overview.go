package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// OverviewSnapshot is one combined round of metrics, activity, and health.
// Derived values (overall status, training flag) are computed on demand from
// the snapshot rather than cached.
type OverviewSnapshot struct {
	Metrics   adminapi.OverviewMetrics
	Activity  adminapi.ActivityPage
	Health    adminapi.HealthReport
	FetchedAt time.Time
}

// OverallStatus reports the health endpoint's verdict, defaulting to unknown.
func (s OverviewSnapshot) OverallStatus() string {
	if s.Health.OverallHealth == "" {
		return "unknown"
	}
	return s.Health.OverallHealth
}

// TrainingActive reports whether the training pipeline is currently running.
func (s OverviewSnapshot) TrainingActive() bool {
	return s.Metrics.TrainingActive()
}

// Overview composes the three top-level fetches into one all-or-nothing
// round: metrics, activity, and health are fetched concurrently, and any
// failure (transport or application-level) fails the whole round with no
// partial commit. Standalone panels remain independently resilient; this
// asymmetry is deliberate.
type Overview struct {
	client        adminapi.Client
	activityLimit int
	telemetry     Telemetry

	mu   sync.Mutex
	last *OverviewSnapshot
}

// NewOverview builds the combined overview around an admin API client.
func NewOverview(client adminapi.Client, activityLimit int, telemetry Telemetry) *Overview {
	if activityLimit <= 0 {
		activityLimit = 10
	}
	return &Overview{
		client:        client,
		activityLimit: activityLimit,
		telemetry:     normalizeTelemetry(telemetry),
	}
}

// Refresh performs one combined round. On failure the previous snapshot is
// left untouched and the aggregate error returned.
func (o *Overview) Refresh(ctx context.Context) (*OverviewSnapshot, error) {
	var (
		metrics  *adminapi.OverviewMetrics
		activity *adminapi.ActivityPage
		health   *adminapi.HealthReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := o.client.Overview(gctx)
		if err != nil {
			return fmt.Errorf("console: overview metrics: %w", err)
		}
		metrics = m
		return nil
	})
	g.Go(func() error {
		a, err := o.client.ActivityFeed(gctx, adminapi.ActivityQuery{Limit: o.activityLimit})
		if err != nil {
			return fmt.Errorf("console: overview activity: %w", err)
		}
		activity = a
		return nil
	})
	g.Go(func() error {
		h, err := o.client.Health(gctx)
		if err != nil {
			// Partial health data is adopted by the standalone panel only;
			// the combined round treats it as a failure.
			return fmt.Errorf("console: overview health: %w", err)
		}
		health = h
		return nil
	})
	if err := g.Wait(); err != nil {
		o.telemetry.Record(ctx, "console.overview.refresh_error", map[string]any{"error": err.Error()})
		return nil, err
	}
	snap := &OverviewSnapshot{
		Metrics:   *metrics,
		Activity:  *activity,
		Health:    *health,
		FetchedAt: time.Now(),
	}
	o.mu.Lock()
	o.last = snap
	o.mu.Unlock()
	o.telemetry.Record(ctx, "console.overview.refresh", map[string]any{
		"overall": snap.OverallStatus(),
	})
	return snap, nil
}

// Last returns the most recent successful combined snapshot, if any.
func (o *Overview) Last() *OverviewSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}
