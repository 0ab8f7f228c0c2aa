package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

func TestActivityQueryForwardsPaging(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{
		Activity: adminapi.ActivityPage{
			Events: []adminapi.ActivityEvent{{EventType: "user_registered"}},
		},
	})
	var captured adminapi.ActivityQuery
	client.ActivityFeedFn = func(ctx context.Context, query adminapi.ActivityQuery) (*adminapi.ActivityPage, error) {
		captured = query
		return &adminapi.ActivityPage{}, nil
	}

	query := NewActivityQuery(client)
	_, err := query.Query(context.Background(), adminapi.ActivityQuery{Limit: 25, Offset: 50})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if captured.Limit != 25 || captured.Offset != 50 {
		t.Fatalf("unexpected server query %+v", captured)
	}
}

func TestHealthQueryPassesPartialReportThrough(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{})
	client.HealthFn = func(ctx context.Context) (*adminapi.HealthReport, error) {
		return &adminapi.HealthReport{OverallHealth: "degraded"}, &adminapi.APIError{Message: "db latency"}
	}

	query := NewHealthQuery(client)
	report, err := query.Query(context.Background(), struct{}{})
	if err == nil {
		t.Fatalf("expected degraded error")
	}
	if report == nil || report.OverallHealth != "degraded" {
		t.Fatalf("expected partial report, got %+v", report)
	}
}

func TestUsersQueryReturnsPage(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{
		Users: adminapi.UserPage{
			Users:      []adminapi.UserRecord{{ID: "u-1"}},
			TotalUsers: 1,
			TotalPages: 1,
		},
	})

	query := NewUsersQuery(client)
	page, err := query.Query(context.Background(), adminapi.UserQuery{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(page.Users) != 1 || page.TotalUsers != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if len(client.UserQueries) != 1 || client.UserQueries[0].Limit != 20 {
		t.Fatalf("unexpected server query %+v", client.UserQueries)
	}
}

func TestUsersQueryPropagatesError(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{})
	bad := errors.New("list unavailable")
	client.UsersFn = func(ctx context.Context, query adminapi.UserQuery) (*adminapi.UserPage, error) {
		return nil, bad
	}

	query := NewUsersQuery(client)
	if _, err := query.Query(context.Background(), adminapi.UserQuery{}); !errors.Is(err, bad) {
		t.Fatalf("expected client error, got %v", err)
	}
}
