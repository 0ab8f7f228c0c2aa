package console

import (
	"context"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// NewHealthPanel builds a polling panel over the system health endpoint.
// Unlike every other panel it adopts a partial report shipped alongside an
// application-level failure: degraded health data is more useful than a
// stale healthy snapshot, and the error stays visible either way.
func NewHealthPanel(client adminapi.Client, opts ...PanelOption[adminapi.HealthReport]) *Panel[adminapi.HealthReport] {
	fetch := func(ctx context.Context) (*adminapi.HealthReport, error) {
		return client.Health(ctx)
	}
	opts = append([]PanelOption[adminapi.HealthReport]{WithPartialAdoption[adminapi.HealthReport]()}, opts...)
	return NewPanel(PanelSystemHealth, fetch, opts...)
}

// NewMetricsPanel builds a polling panel over the overview metrics endpoint.
func NewMetricsPanel(client adminapi.Client, opts ...PanelOption[adminapi.OverviewMetrics]) *Panel[adminapi.OverviewMetrics] {
	fetch := func(ctx context.Context) (*adminapi.OverviewMetrics, error) {
		return client.Overview(ctx)
	}
	return NewPanel(PanelOverviewMetrics, fetch, opts...)
}
