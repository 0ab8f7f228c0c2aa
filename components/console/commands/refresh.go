package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshPanelInput emits a refresh notification for a panel.
type RefreshPanelInput struct {
	Code    string
	Reason  string
	Message string
}

type refreshNotifier interface {
	NotifyPanelUpdated(ctx context.Context, code, reason, message string) error
}

// RefreshPanelCommand triggers refresh hooks without forcing transports.
type RefreshPanelCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshPanelCommand creates the command.
func NewRefreshPanelCommand(service refreshNotifier, telemetry Telemetry) *RefreshPanelCommand {
	return &RefreshPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshPanelInput] = (*RefreshPanelCommand)(nil)

// Execute notifies the console service's refresh hooks.
func (c *RefreshPanelCommand) Execute(ctx context.Context, msg RefreshPanelInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	reason := msg.Reason
	if reason == "" {
		reason = "refresh"
	}
	if err := c.service.NotifyPanelUpdated(ctx, msg.Code, reason, msg.Message); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.panel.refresh_requested", map[string]any{
		"panel": msg.Code,
	})
	return nil
}
