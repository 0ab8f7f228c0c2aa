package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// Notice is a transient operator-facing message produced by a recovery
// execution or a quick action. IDs are unique so front-ends can dismiss
// individual notices.
type Notice struct {
	ID        string
	Severity  string
	Message   string
	CreatedAt time.Time
}

// RecoveryConsole loads the remediation catalog and executes actions against
// the platform. Executions produce notices and "notice" panel events so
// transports can surface the outcome.
type RecoveryConsole struct {
	client    adminapi.Client
	hook      RefreshHook
	telemetry Telemetry

	mu      sync.Mutex
	groups  []adminapi.RecoveryGroup
	notices []Notice
	loaded  bool
}

// RecoveryOption customizes console construction.
type RecoveryOption func(*RecoveryConsole)

// WithRecoveryHook wires a refresh hook for notice events.
func WithRecoveryHook(hook RefreshHook) RecoveryOption {
	return func(c *RecoveryConsole) {
		c.hook = hook
	}
}

// WithRecoveryTelemetry wires a telemetry recorder.
func WithRecoveryTelemetry(t Telemetry) RecoveryOption {
	return func(c *RecoveryConsole) {
		c.telemetry = t
	}
}

// NewRecoveryConsole builds a recovery console around an admin API client.
func NewRecoveryConsole(client adminapi.Client, opts ...RecoveryOption) *RecoveryConsole {
	c := &RecoveryConsole{client: client}
	for _, opt := range opts {
		opt(c)
	}
	c.hook = normalizeRefreshHook(c.hook)
	c.telemetry = normalizeTelemetry(c.telemetry)
	return c
}

// Load fetches the remediation catalog. A failed load keeps the previously
// loaded groups.
func (c *RecoveryConsole) Load(ctx context.Context) error {
	groups, err := c.client.RecoveryCatalog(ctx)
	if err != nil {
		c.telemetry.Record(ctx, "console.recovery.load_error", map[string]any{"error": err.Error()})
		return fmt.Errorf("console: load recovery catalog: %w", err)
	}
	c.mu.Lock()
	c.groups = groups
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Loaded reports whether the catalog has been fetched at least once.
func (c *RecoveryConsole) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Groups returns the remediation groups from the last successful load.
func (c *RecoveryConsole) Groups() []adminapi.RecoveryGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]adminapi.RecoveryGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

// Action resolves a catalog action by id.
func (c *RecoveryConsole) Action(actionID string) (adminapi.RecoveryAction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, group := range c.groups {
		for _, action := range group.Actions {
			if action.ID == actionID {
				return action, true
			}
		}
	}
	return adminapi.RecoveryAction{}, false
}

// Execute runs a remediation action. The server's message becomes a success
// notice; failures become error notices. Either way a "notice" event reaches
// the hook.
func (c *RecoveryConsole) Execute(ctx context.Context, input adminapi.ExecuteRecoveryInput) (Notice, error) {
	message, err := c.client.ExecuteRecovery(ctx, input)
	var notice Notice
	if err != nil {
		notice = c.pushNotice("error", fmt.Sprintf("recovery %s failed: %s", input.ActionID, err.Error()))
		c.telemetry.Record(ctx, "console.recovery.execute_error", map[string]any{
			"action": input.ActionID,
			"error":  err.Error(),
		})
	} else {
		notice = c.pushNotice("success", message)
		c.telemetry.Record(ctx, "console.recovery.execute", map[string]any{
			"action": input.ActionID,
		})
	}
	_ = c.hook.PanelUpdated(ctx, PanelEvent{
		PanelCode: PanelRecoveryActions,
		Reason:    "notice",
		Message:   notice.Message,
		At:        notice.CreatedAt,
	})
	if err != nil {
		return notice, fmt.Errorf("console: execute recovery %s: %w", input.ActionID, err)
	}
	return notice, nil
}

// Notices returns the accumulated notices, oldest first.
func (c *RecoveryConsole) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Dismiss removes a notice by id.
func (c *RecoveryConsole) Dismiss(noticeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notices {
		if n.ID == noticeID {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return
		}
	}
}

func (c *RecoveryConsole) pushNotice(severity, message string) Notice {
	notice := Notice{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}
	c.mu.Lock()
	c.notices = append(c.notices, notice)
	c.mu.Unlock()
	return notice
}
