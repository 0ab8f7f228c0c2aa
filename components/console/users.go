package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// ErrProtectedAccount guards active admin accounts from deactivation through
// the console. This is a UI-layer convenience, not a security boundary; the
// server enforces the real invariant.
var ErrProtectedAccount = errors.New("console: active admin accounts cannot be deactivated")

// UserDirectory is the management table over the platform's user list with
// the row actions the admin surface exposes: toggle status, reset password,
// and bulk activation.
type UserDirectory struct {
	client    adminapi.Client
	table     *Table[adminapi.UserRecord]
	telemetry Telemetry
}

// UserDirectoryOption customizes directory construction.
type UserDirectoryOption func(*UserDirectory)

// WithUserQuery overrides the initial list query.
func WithUserQuery(query TableQuery) UserDirectoryOption {
	return func(d *UserDirectory) {
		d.table = NewTable(d.loader(), WithTableQuery[adminapi.UserRecord](query))
	}
}

// WithUserTelemetry wires a telemetry recorder.
func WithUserTelemetry(t Telemetry) UserDirectoryOption {
	return func(d *UserDirectory) {
		d.telemetry = t
	}
}

// NewUserDirectory builds the directory around an admin API client.
func NewUserDirectory(client adminapi.Client, opts ...UserDirectoryOption) *UserDirectory {
	d := &UserDirectory{client: client}
	d.table = NewTable(d.loader())
	for _, opt := range opts {
		opt(d)
	}
	d.telemetry = normalizeTelemetry(d.telemetry)
	return d
}

func (d *UserDirectory) loader() PageLoader[adminapi.UserRecord] {
	return func(ctx context.Context, query TableQuery) (TablePage[adminapi.UserRecord], error) {
		page, err := d.client.Users(ctx, adminapi.UserQuery{
			Page:      query.Page,
			Limit:     query.Limit,
			Search:    query.Search,
			SortBy:    query.SortBy,
			SortOrder: string(query.SortOrder),
		})
		if err != nil {
			return TablePage[adminapi.UserRecord]{}, fmt.Errorf("console: load users: %w", err)
		}
		return TablePage[adminapi.UserRecord]{
			Rows:       page.Users,
			TotalPages: page.TotalPages,
			TotalRows:  page.TotalUsers,
		}, nil
	}
}

// Table exposes the underlying table for query/selection state.
func (d *UserDirectory) Table() *Table[adminapi.UserRecord] { return d.table }

// CanToggle reports whether the toggle control is enabled for a user. Active
// admins are protected from deactivation.
func (d *UserDirectory) CanToggle(user adminapi.UserRecord) bool {
	return !(user.IsAdmin && user.IsActive)
}

// ToggleStatus flips a user's active flag and refetches the page. The call is
// rejected for protected accounts and for rows with an action in flight.
func (d *UserDirectory) ToggleStatus(ctx context.Context, userID string) error {
	if user, ok := d.table.Row(userID); ok && !d.CanToggle(user) {
		return ErrProtectedAccount
	}
	err := d.table.RunRowAction(ctx, userID, func(ctx context.Context) error {
		return d.client.ToggleUserStatus(ctx, userID)
	})
	if err == nil {
		d.telemetry.Record(ctx, "console.users.toggle_status", map[string]any{"user": userID})
	}
	return err
}

// ResetPassword triggers a password reset for a user and refetches the page.
// The server message is returned for display.
func (d *UserDirectory) ResetPassword(ctx context.Context, userID string, input adminapi.ResetPasswordInput) (string, error) {
	var message string
	err := d.table.RunRowAction(ctx, userID, func(ctx context.Context) error {
		msg, err := d.client.ResetUserPassword(ctx, userID, input)
		if err != nil {
			return err
		}
		message = msg
		return nil
	})
	if err != nil {
		return "", err
	}
	d.telemetry.Record(ctx, "console.users.reset_password", map[string]any{"user": userID})
	return message, nil
}

// BulkSetActive toggles every selected user whose active flag disagrees with
// the target state; users already in the target state are skipped, as are
// protected admins on deactivation. All toggles are issued concurrently and
// settle before the refetch clears the selection. The number of issued
// toggles is returned.
func (d *UserDirectory) BulkSetActive(ctx context.Context, active bool) (int, error) {
	issued, err := d.table.BulkMutate(ctx,
		func(user adminapi.UserRecord) bool {
			if user.IsActive == active {
				return true
			}
			if !active && !d.CanToggle(user) {
				return true
			}
			return false
		},
		func(ctx context.Context, userID string) error {
			return d.client.ToggleUserStatus(ctx, userID)
		},
	)
	d.telemetry.Record(ctx, "console.users.bulk_set_active", map[string]any{
		"target": active,
		"issued": issued,
	})
	return issued, err
}
