package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

type userLister interface {
	Users(ctx context.Context, query adminapi.UserQuery) (*adminapi.UserPage, error)
}

// UsersQuery executes read-only user directory lookups.
type UsersQuery struct {
	client userLister
}

// NewUsersQuery builds the query.
func NewUsersQuery(client userLister) *UsersQuery {
	return &UsersQuery{client: client}
}

var _ gocommand.Querier[adminapi.UserQuery, *adminapi.UserPage] = (*UsersQuery)(nil)

// Query resolves one page of the user directory.
func (q *UsersQuery) Query(ctx context.Context, input adminapi.UserQuery) (*adminapi.UserPage, error) {
	return q.client.Users(ctx, input)
}
