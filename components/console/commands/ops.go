package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

type opRunner interface {
	ExecuteOp(ctx context.Context, op string) error
}

// RunOpInput names the quick action to run.
type RunOpInput struct {
	Op string
}

// RunOpCommand executes one of the quick-action operations.
type RunOpCommand struct {
	service   opRunner
	telemetry Telemetry
}

// NewRunOpCommand creates the command.
func NewRunOpCommand(service opRunner, telemetry Telemetry) *RunOpCommand {
	return &RunOpCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RunOpInput] = (*RunOpCommand)(nil)

// Execute runs the operation through the console service.
func (c *RunOpCommand) Execute(ctx context.Context, msg RunOpInput) error {
	if c.service == nil {
		return errors.New("op command requires service")
	}
	if msg.Op == "" {
		return errors.New("op command requires operation code")
	}
	if err := c.service.ExecuteOp(ctx, msg.Op); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.run_op", map[string]any{"op": msg.Op})
	return nil
}
