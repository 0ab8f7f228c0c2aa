package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

type activityReader interface {
	ActivityFeed(ctx context.Context, query adminapi.ActivityQuery) (*adminapi.ActivityPage, error)
}

// ActivityQuery executes read-only activity feed lookups.
type ActivityQuery struct {
	client activityReader
}

// NewActivityQuery builds the query.
func NewActivityQuery(client activityReader) *ActivityQuery {
	return &ActivityQuery{client: client}
}

var _ gocommand.Querier[adminapi.ActivityQuery, *adminapi.ActivityPage] = (*ActivityQuery)(nil)

// Query resolves one page of the activity feed.
func (q *ActivityQuery) Query(ctx context.Context, input adminapi.ActivityQuery) (*adminapi.ActivityPage, error) {
	return q.client.ActivityFeed(ctx, input)
}
