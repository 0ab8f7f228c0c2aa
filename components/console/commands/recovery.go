package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/everkeep/go-admin-console/components/console"
	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

type recoveryExecutor interface {
	Execute(ctx context.Context, input adminapi.ExecuteRecoveryInput) (console.Notice, error)
}

// ExecuteRecoveryInput identifies the remediation action to run.
type ExecuteRecoveryInput struct {
	ActionID     string
	Context      string
	ErrorDetails []string
}

// ExecuteRecoveryCommand runs a remediation action through the recovery console.
type ExecuteRecoveryCommand struct {
	recovery  recoveryExecutor
	telemetry Telemetry
}

// NewExecuteRecoveryCommand creates the command.
func NewExecuteRecoveryCommand(recovery recoveryExecutor, telemetry Telemetry) *ExecuteRecoveryCommand {
	return &ExecuteRecoveryCommand{recovery: recovery, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ExecuteRecoveryInput] = (*ExecuteRecoveryCommand)(nil)

// Execute runs the action and records the resulting notice.
func (c *ExecuteRecoveryCommand) Execute(ctx context.Context, msg ExecuteRecoveryInput) error {
	if c.recovery == nil {
		return errors.New("recovery command requires recovery console")
	}
	if msg.ActionID == "" {
		return errors.New("recovery command requires action id")
	}
	notice, err := c.recovery.Execute(ctx, adminapi.ExecuteRecoveryInput{
		ActionID:     msg.ActionID,
		Context:      msg.Context,
		ErrorDetails: msg.ErrorDetails,
	})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.execute_recovery", map[string]any{
		"action": msg.ActionID,
		"notice": notice.ID,
	})
	return nil
}
