package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

type userDirectory interface {
	ToggleStatus(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, userID string, input adminapi.ResetPasswordInput) (string, error)
	BulkSetActive(ctx context.Context, active bool) (int, error)
}

// ToggleUserStatusInput identifies the user whose active flag flips.
type ToggleUserStatusInput struct {
	UserID string
}

// ToggleUserStatusCommand flips a user's active flag through the directory.
type ToggleUserStatusCommand struct {
	directory userDirectory
	telemetry Telemetry
}

// NewToggleUserStatusCommand creates the command.
func NewToggleUserStatusCommand(directory userDirectory, telemetry Telemetry) *ToggleUserStatusCommand {
	return &ToggleUserStatusCommand{directory: directory, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleUserStatusInput] = (*ToggleUserStatusCommand)(nil)

// Execute toggles the user and refetches the directory page.
func (c *ToggleUserStatusCommand) Execute(ctx context.Context, msg ToggleUserStatusInput) error {
	if c.directory == nil {
		return errors.New("toggle command requires directory")
	}
	if msg.UserID == "" {
		return errors.New("toggle command requires user id")
	}
	if err := c.directory.ToggleStatus(ctx, msg.UserID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.toggle_user", map[string]any{
		"user_id": msg.UserID,
	})
	return nil
}

// ResetUserPasswordInput configures the password reset.
type ResetUserPasswordInput struct {
	UserID    string
	SendEmail bool
	Reason    string
}

// ResetUserPasswordCommand triggers a password reset through the directory.
type ResetUserPasswordCommand struct {
	directory userDirectory
	telemetry Telemetry
}

// NewResetUserPasswordCommand creates the command.
func NewResetUserPasswordCommand(directory userDirectory, telemetry Telemetry) *ResetUserPasswordCommand {
	return &ResetUserPasswordCommand{directory: directory, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetUserPasswordInput] = (*ResetUserPasswordCommand)(nil)

// Execute resets the user's password and refetches the directory page.
func (c *ResetUserPasswordCommand) Execute(ctx context.Context, msg ResetUserPasswordInput) error {
	if c.directory == nil {
		return errors.New("reset command requires directory")
	}
	if msg.UserID == "" {
		return errors.New("reset command requires user id")
	}
	message, err := c.directory.ResetPassword(ctx, msg.UserID, adminapi.ResetPasswordInput{
		SendEmail: msg.SendEmail,
		Reason:    msg.Reason,
	})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.reset_password", map[string]any{
		"user_id": msg.UserID,
		"message": message,
	})
	return nil
}

// BulkSetActiveInput sets the target state applied to the selection.
type BulkSetActiveInput struct {
	Active bool
}

// BulkSetActiveCommand applies an activation state to the selected users.
type BulkSetActiveCommand struct {
	directory userDirectory
	telemetry Telemetry
}

// NewBulkSetActiveCommand creates the command.
func NewBulkSetActiveCommand(directory userDirectory, telemetry Telemetry) *BulkSetActiveCommand {
	return &BulkSetActiveCommand{directory: directory, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[BulkSetActiveInput] = (*BulkSetActiveCommand)(nil)

// Execute issues the bulk mutation over the current selection.
func (c *BulkSetActiveCommand) Execute(ctx context.Context, msg BulkSetActiveInput) error {
	if c.directory == nil {
		return errors.New("bulk command requires directory")
	}
	issued, err := c.directory.BulkSetActive(ctx, msg.Active)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.bulk_set_active", map[string]any{
		"target": msg.Active,
		"issued": issued,
	})
	return nil
}
