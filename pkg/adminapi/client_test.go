package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func envelopeResponse(t *testing.T, w http.ResponseWriter, success bool, data any, errMsg string) {
	t.Helper()
	payload := map[string]any{"success": success}
	if data != nil {
		payload["data"] = data
	}
	if errMsg != "" {
		payload["error"] = errMsg
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
}

func TestHTTPClientActivityFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/analytics/activity-feed" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Fatalf("expected limit=10, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		envelopeResponse(t, w, true, map[string]any{
			"activities": []map[string]any{
				{
					"event_type":  "user_registration",
					"email":       "ada@example.com",
					"created_at":  "2026-08-20T10:00:00Z",
					"time_ago":    "2 hours ago",
					"description": "New family member joined",
				},
			},
			"summary":    map[string]any{"window_hours": 24, "counts": map[string]int{"user_registration": 1}},
			"pagination": map[string]any{"limit": 10, "offset": 0, "total": 1, "has_more": false},
		}, "")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	page, err := client.ActivityFeed(context.Background(), ActivityQuery{Limit: 10})
	if err != nil {
		t.Fatalf("activity feed: %v", err)
	}
	if len(page.Events) != 1 || page.Events[0].EventType != "user_registration" {
		t.Fatalf("unexpected page: %#v", page)
	}
	if page.CanLoadMore() {
		t.Fatalf("expected no further pages")
	}
	if page.Summary.Counts["user_registration"] != 1 {
		t.Fatalf("expected summary counts, got %#v", page.Summary)
	}
}

func TestHTTPClientUsersQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "3" || q.Get("search") != "reed" || q.Get("sortBy") != "name" || q.Get("sortOrder") != "ASC" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		envelopeResponse(t, w, true, map[string]any{
			"users": []map[string]any{
				{"id": "u1", "email": "reed@example.com", "name": "Reed", "role": "member", "is_active": true, "created_at": "2026-01-01T00:00:00Z"},
			},
			"pagination": map[string]any{"totalPages": 7, "totalUsers": 132},
		}, "")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	page, err := client.Users(context.Background(), UserQuery{Page: 3, Limit: 20, Search: "reed", SortBy: "name", SortOrder: "ASC"})
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if page.TotalPages != 7 || page.TotalUsers != 132 {
		t.Fatalf("unexpected pagination: %#v", page)
	}
	if len(page.Users) != 1 || page.Users[0].ID != "u1" {
		t.Fatalf("unexpected users: %#v", page.Users)
	}
}

func TestHTTPClientEnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(t, w, false, nil, "metrics unavailable")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Overview(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "metrics unavailable" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestHTTPClientHealthPartialPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(t, w, false, map[string]any{
			"overall_health": "degraded",
			"database":       map[string]any{"status": "ok", "latency_ms": 12.5},
		}, "training system unreachable")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	report, err := client.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if report == nil || report.OverallHealth != "degraded" {
		t.Fatalf("expected partial report alongside the error, got %#v", report)
	}
	if !report.Degraded() {
		t.Fatalf("expected degraded report")
	}
}

func TestHTTPClientHealthPartialWithoutOverallStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(t, w, false, map[string]any{
			"services": []map[string]any{
				{"name": "database", "status": "down", "message": "connection refused"},
			},
			"alerts": []map[string]any{
				{"severity": "critical", "message": "database unreachable"},
			},
		}, "health aggregation failed")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	report, err := client.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if report == nil {
		t.Fatalf("expected partial report even without an overall status")
	}
	if len(report.Services) != 1 || report.Services[0].Name != "database" {
		t.Fatalf("unexpected services: %#v", report.Services)
	}
	if len(report.Alerts) != 1 || report.Alerts[0].Severity != "critical" {
		t.Fatalf("unexpected alerts: %#v", report.Alerts)
	}
}

func TestHTTPClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	report, err := client.Health(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failures must not be APIErrors: %v", err)
	}
	if report != nil {
		t.Fatalf("transport failures must not carry data, got %#v", report)
	}
}

func TestHTTPClientResetPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/users/u9/reset-password" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["sendEmail"] != true || body["reason"] != "account lockout" {
			t.Fatalf("unexpected body %#v", body)
		}
		envelopeResponse(t, w, true, map[string]any{"message": "reset link sent"}, "")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	msg, err := client.ResetUserPassword(context.Background(), "u9", ResetPasswordInput{SendEmail: true, Reason: "account lockout"})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if msg != "reset link sent" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHTTPClientExecuteRecovery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/errors/recovery" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body executeRecoveryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.ActionID != "clear-cache" || body.Context != "timeline" || len(body.ErrorDetails) != 2 {
			t.Fatalf("unexpected body %#v", body)
		}
		envelopeResponse(t, w, true, map[string]any{"message": "cache cleared"}, "")
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	msg, err := client.ExecuteRecovery(context.Background(), ExecuteRecoveryInput{
		ActionID:     "clear-cache",
		Context:      "timeline",
		ErrorDetails: []string{"timeout", "stale snapshot"},
	})
	if err != nil {
		t.Fatalf("execute recovery: %v", err)
	}
	if msg != "cache cleared" {
		t.Fatalf("unexpected message %q", msg)
	}
}
