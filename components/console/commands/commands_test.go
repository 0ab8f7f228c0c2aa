package commands

import (
	"context"
	"errors"
	"testing"

	console "github.com/everkeep/go-admin-console/components/console"
	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

type fakeDirectory struct {
	toggled   []string
	resets    []adminapi.ResetPasswordInput
	bulk      []bool
	issued    int
	toggleErr error
}

func (d *fakeDirectory) ToggleStatus(ctx context.Context, userID string) error {
	if d.toggleErr != nil {
		return d.toggleErr
	}
	d.toggled = append(d.toggled, userID)
	return nil
}

func (d *fakeDirectory) ResetPassword(ctx context.Context, userID string, input adminapi.ResetPasswordInput) (string, error) {
	d.resets = append(d.resets, input)
	return "reset queued", nil
}

func (d *fakeDirectory) BulkSetActive(ctx context.Context, active bool) (int, error) {
	d.bulk = append(d.bulk, active)
	return d.issued, nil
}

type fakeNotifier struct {
	codes   []string
	reasons []string
}

func (n *fakeNotifier) NotifyPanelUpdated(ctx context.Context, code, reason, message string) error {
	n.codes = append(n.codes, code)
	n.reasons = append(n.reasons, reason)
	return nil
}

type fakeOpRunner struct {
	ops []string
	err error
}

func (r *fakeOpRunner) ExecuteOp(ctx context.Context, op string) error {
	if r.err != nil {
		return r.err
	}
	r.ops = append(r.ops, op)
	return nil
}

type fakeRecovery struct {
	inputs []adminapi.ExecuteRecoveryInput
	err    error
}

func (r *fakeRecovery) Execute(ctx context.Context, input adminapi.ExecuteRecoveryInput) (console.Notice, error) {
	r.inputs = append(r.inputs, input)
	if r.err != nil {
		return console.Notice{Severity: "error"}, r.err
	}
	return console.Notice{ID: "n-1", Severity: "success"}, nil
}

type captureTelemetry struct {
	events []string
}

func (t *captureTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	t.events = append(t.events, event)
}

func TestToggleUserStatusCommand(t *testing.T) {
	dir := &fakeDirectory{}
	telemetry := &captureTelemetry{}
	cmd := NewToggleUserStatusCommand(dir, telemetry)

	if err := cmd.Execute(context.Background(), ToggleUserStatusInput{UserID: "u-1"}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(dir.toggled) != 1 || dir.toggled[0] != "u-1" {
		t.Fatalf("unexpected toggles %v", dir.toggled)
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "console.command.toggle_user" {
		t.Fatalf("unexpected telemetry %v", telemetry.events)
	}
}

func TestToggleUserStatusCommandRequiresUserID(t *testing.T) {
	cmd := NewToggleUserStatusCommand(&fakeDirectory{}, nil)
	if err := cmd.Execute(context.Background(), ToggleUserStatusInput{}); err == nil {
		t.Fatalf("expected missing user id error")
	}
}

func TestToggleUserStatusCommandPropagatesDirectoryError(t *testing.T) {
	bad := errors.New("protected account")
	dir := &fakeDirectory{toggleErr: bad}
	telemetry := &captureTelemetry{}
	cmd := NewToggleUserStatusCommand(dir, telemetry)

	err := cmd.Execute(context.Background(), ToggleUserStatusInput{UserID: "u-2"})
	if !errors.Is(err, bad) {
		t.Fatalf("expected directory error, got %v", err)
	}
	if len(telemetry.events) != 0 {
		t.Fatalf("failed command must not record telemetry")
	}
}

func TestResetUserPasswordCommandForwardsInput(t *testing.T) {
	dir := &fakeDirectory{}
	cmd := NewResetUserPasswordCommand(dir, nil)

	err := cmd.Execute(context.Background(), ResetUserPasswordInput{
		UserID:    "u-1",
		SendEmail: true,
		Reason:    "support ticket",
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(dir.resets) != 1 || !dir.resets[0].SendEmail || dir.resets[0].Reason != "support ticket" {
		t.Fatalf("unexpected reset input %+v", dir.resets)
	}
}

func TestBulkSetActiveCommand(t *testing.T) {
	dir := &fakeDirectory{issued: 2}
	cmd := NewBulkSetActiveCommand(dir, nil)

	if err := cmd.Execute(context.Background(), BulkSetActiveInput{Active: false}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(dir.bulk) != 1 || dir.bulk[0] != false {
		t.Fatalf("unexpected bulk calls %v", dir.bulk)
	}
}

func TestRefreshPanelCommandDefaultsReason(t *testing.T) {
	notifier := &fakeNotifier{}
	cmd := NewRefreshPanelCommand(notifier, nil)

	err := cmd.Execute(context.Background(), RefreshPanelInput{Code: "admin.panel.activity_feed"})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if notifier.reasons[0] != "refresh" {
		t.Fatalf("expected default reason, got %q", notifier.reasons[0])
	}
}

func TestRunOpCommand(t *testing.T) {
	runner := &fakeOpRunner{}
	cmd := NewRunOpCommand(runner, nil)

	if err := cmd.Execute(context.Background(), RunOpInput{Op: "ops.backup.trigger"}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(runner.ops) != 1 || runner.ops[0] != "ops.backup.trigger" {
		t.Fatalf("unexpected ops %v", runner.ops)
	}

	if err := cmd.Execute(context.Background(), RunOpInput{}); err == nil {
		t.Fatalf("expected missing op error")
	}
}

func TestExecuteRecoveryCommand(t *testing.T) {
	recovery := &fakeRecovery{}
	cmd := NewExecuteRecoveryCommand(recovery, nil)

	err := cmd.Execute(context.Background(), ExecuteRecoveryInput{
		ActionID:     "retry-training",
		Context:      "training",
		ErrorDetails: []string{"job 42 stalled"},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(recovery.inputs) != 1 || recovery.inputs[0].ActionID != "retry-training" {
		t.Fatalf("unexpected recovery inputs %+v", recovery.inputs)
	}
	if recovery.inputs[0].Context != "training" || len(recovery.inputs[0].ErrorDetails) != 1 {
		t.Fatalf("expected context and details forwarded, got %+v", recovery.inputs[0])
	}
}

func TestExecuteRecoveryCommandRequiresActionID(t *testing.T) {
	cmd := NewExecuteRecoveryCommand(&fakeRecovery{}, nil)
	if err := cmd.Execute(context.Background(), ExecuteRecoveryInput{}); err == nil {
		t.Fatalf("expected missing action id error")
	}
}

func TestCommandsRejectNilCollaborators(t *testing.T) {
	ctx := context.Background()
	if err := NewToggleUserStatusCommand(nil, nil).Execute(ctx, ToggleUserStatusInput{UserID: "u"}); err == nil {
		t.Fatalf("expected nil directory error")
	}
	if err := NewRefreshPanelCommand(nil, nil).Execute(ctx, RefreshPanelInput{Code: "x"}); err == nil {
		t.Fatalf("expected nil notifier error")
	}
	if err := NewRunOpCommand(nil, nil).Execute(ctx, RunOpInput{Op: "x"}); err == nil {
		t.Fatalf("expected nil runner error")
	}
	if err := NewExecuteRecoveryCommand(nil, nil).Execute(ctx, ExecuteRecoveryInput{ActionID: "x"}); err == nil {
		t.Fatalf("expected nil recovery error")
	}
}
