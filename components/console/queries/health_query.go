package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

type healthReader interface {
	Health(ctx context.Context) (*adminapi.HealthReport, error)
}

// HealthQuery executes read-only health lookups. A partial report returned
// alongside an application-level failure is passed through to the caller.
type HealthQuery struct {
	client healthReader
}

// NewHealthQuery builds the query.
func NewHealthQuery(client healthReader) *HealthQuery {
	return &HealthQuery{client: client}
}

var _ gocommand.Querier[struct{}, *adminapi.HealthReport] = (*HealthQuery)(nil)

// Query resolves the current system health report.
func (q *HealthQuery) Query(ctx context.Context, _ struct{}) (*adminapi.HealthReport, error) {
	return q.client.Health(ctx)
}
