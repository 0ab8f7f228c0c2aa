package console

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
	"github.com/everkeep/go-admin-console/pkg/recovery"
)

func TestGuardFetchRetriesTransientFailures(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context) (*string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("connection refused")
		}
		v := "ok"
		return &v, nil
	}
	guarded := guardFetch(nil, recovery.RetryPolicy{MaxAttempts: 3}, fetch)

	data, err := guarded(context.Background())
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if *data != "ok" {
		t.Fatalf("unexpected payload %q", *data)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestGuardFetchDoesNotRetryApplicationErrors(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context) (*string, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &adminapi.APIError{Message: "forbidden"}
	}
	guarded := guardFetch(nil, recovery.RetryPolicy{MaxAttempts: 5}, fetch)

	_, err := guarded(context.Background())
	var apiErr *adminapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("application error must not retry, got %d attempts", calls)
	}
}

func TestGuardFetchPassesPartialDataThrough(t *testing.T) {
	partial := "partial"
	fetch := func(ctx context.Context) (*string, error) {
		return &partial, &adminapi.APIError{Message: "degraded"}
	}
	guarded := guardFetch(nil, recovery.RetryPolicy{MaxAttempts: 1}, fetch)

	data, err := guarded(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if data == nil || *data != "partial" {
		t.Fatalf("expected partial payload through the guard, got %v", data)
	}
}

func TestGuardFetchRespectsOpenBreaker(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context) (*string, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("down")
	}
	breaker := recovery.NewCircuitBreaker(1, time.Hour)
	guarded := guardFetch(breaker, recovery.RetryPolicy{MaxAttempts: 1}, fetch)

	if _, err := guarded(context.Background()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	// Breaker is now open: the dependency must not be reached again.
	_, err := guarded(context.Background())
	if !errors.Is(err, recovery.ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("open breaker must short-circuit, got %d calls", calls)
	}
}

func TestServiceHealthPanelAdoptsPartialReport(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{})
	client.HealthFn = func(ctx context.Context) (*adminapi.HealthReport, error) {
		return &adminapi.HealthReport{OverallHealth: "degraded"}, &adminapi.APIError{Message: "db latency"}
	}
	service := NewService(Options{Client: client})

	panel := service.HealthPanel()
	if err := panel.Refresh(context.Background(), false); err == nil {
		t.Fatalf("expected refresh error")
	}
	snap := panel.Snapshot()
	if !snap.HasData() || snap.Data.OverallHealth != "degraded" {
		t.Fatalf("expected partial report adopted, got %+v", snap.Data)
	}
	if snap.Err == "" {
		t.Fatalf("expected error retained alongside partial data")
	}
}

func TestServicePanelsUsePolicies(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{})
	service := NewService(Options{
		Client: client,
		Policies: map[string]PollingPolicy{
			PanelActivityFeed: {Interval: time.Minute, Enabled: true, Silent: true},
		},
	})
	panel := service.ActivityPanel()
	if panel.Code() != PanelActivityFeed {
		t.Fatalf("unexpected code %q", panel.Code())
	}
}

func TestServiceExecuteOpDispatch(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{})
	hook := &recordingHook{}
	service := NewService(Options{Client: client, RefreshHook: hook})
	ctx := context.Background()

	if err := service.ExecuteOp(ctx, OpStartTraining); err != nil {
		t.Fatalf("start training failed: %v", err)
	}
	if err := service.ExecuteOp(ctx, OpPauseTraining); err != nil {
		t.Fatalf("pause training failed: %v", err)
	}
	if err := service.ExecuteOp(ctx, OpTriggerBackup); err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if len(client.TrainingCalls) != 2 || client.TrainingCalls[0] != "start" || client.TrainingCalls[1] != "pause" {
		t.Fatalf("unexpected training calls %v", client.TrainingCalls)
	}
	if client.BackupCalls != 1 {
		t.Fatalf("expected one backup call, got %d", client.BackupCalls)
	}

	events := hook.Events()
	if len(events) != 3 {
		t.Fatalf("expected hook event per op, got %d", len(events))
	}
	for _, event := range events {
		if event.PanelCode != PanelQuickActions || event.Reason != "notice" {
			t.Fatalf("unexpected op event %+v", event)
		}
	}
}

func TestServiceExecuteOpRejectsUnknownCode(t *testing.T) {
	service := NewService(Options{Client: adminapi.NewMockClient(adminapi.MockData{})})
	err := service.ExecuteOp(context.Background(), "ops.unknown")
	if !errors.Is(err, ErrUnknownOp) {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}

func TestServiceValidatePanelConfig(t *testing.T) {
	service := NewService(Options{Client: adminapi.NewMockClient(adminapi.MockData{})})

	if err := service.ValidatePanelConfig(PanelActivityFeed, map[string]any{"limit": 10}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := service.ValidatePanelConfig(PanelActivityFeed, map[string]any{"limit": 500}); err == nil {
		t.Fatalf("expected limit above maximum to fail validation")
	}
	if err := service.ValidatePanelConfig("missing.panel", nil); err == nil {
		t.Fatalf("expected unknown panel code to fail")
	}
}
