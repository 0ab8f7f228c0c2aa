package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/everkeep/go-admin-console/components/console"
	"github.com/everkeep/go-admin-console/components/console/commands"
	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// Executor is the transport-agnostic surface route layers call into. It pairs
// the read queries with the mutation commands behind one interface so routers
// need a single dependency.
type Executor interface {
	Overview(ctx context.Context) (*console.OverviewSnapshot, error)
	Health(ctx context.Context) (*adminapi.HealthReport, error)
	Activity(ctx context.Context, query adminapi.ActivityQuery) (*adminapi.ActivityPage, error)
	Users(ctx context.Context, query adminapi.UserQuery) (*adminapi.UserPage, error)
	Toggle(ctx context.Context, input commands.ToggleUserStatusInput) error
	Reset(ctx context.Context, input commands.ResetUserPasswordInput) error
	Recovery(ctx context.Context, input commands.ExecuteRecoveryInput) error
	RunOp(ctx context.Context, input commands.RunOpInput) error
	Refresh(ctx context.Context, input commands.RefreshPanelInput) error
}

// CommandExecutor bundles queries and commands into an Executor.
type CommandExecutor struct {
	OverviewSource Overviewer
	HealthQuery    gocommand.Querier[struct{}, *adminapi.HealthReport]
	ActivityQuery  gocommand.Querier[adminapi.ActivityQuery, *adminapi.ActivityPage]
	UsersQuery     gocommand.Querier[adminapi.UserQuery, *adminapi.UserPage]

	ToggleCmd   gocommand.Commander[commands.ToggleUserStatusInput]
	ResetCmd    gocommand.Commander[commands.ResetUserPasswordInput]
	RecoveryCmd gocommand.Commander[commands.ExecuteRecoveryInput]
	RunOpCmd    gocommand.Commander[commands.RunOpInput]
	RefreshCmd  gocommand.Commander[commands.RefreshPanelInput]
}

var _ Executor = (*CommandExecutor)(nil)

var errNotConfigured = errors.New("httpapi: endpoint not configured")

// Overview resolves the combined metrics/activity/health round.
func (e *CommandExecutor) Overview(ctx context.Context) (*console.OverviewSnapshot, error) {
	if e.OverviewSource == nil {
		return nil, errNotConfigured
	}
	return e.OverviewSource.Refresh(ctx)
}

// Health resolves the system health report.
func (e *CommandExecutor) Health(ctx context.Context) (*adminapi.HealthReport, error) {
	if e.HealthQuery == nil {
		return nil, errNotConfigured
	}
	return e.HealthQuery.Query(ctx, struct{}{})
}

// Activity resolves one page of the activity feed.
func (e *CommandExecutor) Activity(ctx context.Context, query adminapi.ActivityQuery) (*adminapi.ActivityPage, error) {
	if e.ActivityQuery == nil {
		return nil, errNotConfigured
	}
	return e.ActivityQuery.Query(ctx, query)
}

// Users resolves one page of the user directory.
func (e *CommandExecutor) Users(ctx context.Context, query adminapi.UserQuery) (*adminapi.UserPage, error) {
	if e.UsersQuery == nil {
		return nil, errNotConfigured
	}
	return e.UsersQuery.Query(ctx, query)
}

// Toggle flips a user's active flag.
func (e *CommandExecutor) Toggle(ctx context.Context, input commands.ToggleUserStatusInput) error {
	if e.ToggleCmd == nil {
		return errNotConfigured
	}
	return e.ToggleCmd.Execute(ctx, input)
}

// Reset triggers a password reset.
func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetUserPasswordInput) error {
	if e.ResetCmd == nil {
		return errNotConfigured
	}
	return e.ResetCmd.Execute(ctx, input)
}

// Recovery runs a remediation action.
func (e *CommandExecutor) Recovery(ctx context.Context, input commands.ExecuteRecoveryInput) error {
	if e.RecoveryCmd == nil {
		return errNotConfigured
	}
	return e.RecoveryCmd.Execute(ctx, input)
}

// RunOp executes a quick action.
func (e *CommandExecutor) RunOp(ctx context.Context, input commands.RunOpInput) error {
	if e.RunOpCmd == nil {
		return errNotConfigured
	}
	return e.RunOpCmd.Execute(ctx, input)
}

// Refresh pushes a panel refresh notification.
func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshPanelInput) error {
	if e.RefreshCmd == nil {
		return errNotConfigured
	}
	return e.RefreshCmd.Execute(ctx, input)
}
