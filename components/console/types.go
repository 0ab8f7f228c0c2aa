package console

import (
	"context"
	"time"
)

// RefreshHook notifies transports (REST/WebSocket/SSE) about panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// PanelRegistry stores panel definitions discoverable via hooks or manifests.
type PanelRegistry interface {
	RegisterDefinition(def PanelDefinition) error
	Definition(code string) (PanelDefinition, bool)
	Definitions() []PanelDefinition
}

// ConfigValidator validates panel configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def PanelDefinition, config map[string]any) error
}

// PanelDefinition describes a panel type: its code, display metadata, and the
// JSON schema its configuration must satisfy.
type PanelDefinition struct {
	Code        string
	Name        string
	Description string
	Category    string
	Schema      map[string]any
}

// PanelEvent describes a panel state transition that transports may care
// about. Reason is one of "refresh", "error", or "notice".
type PanelEvent struct {
	PanelCode string
	Reason    string
	Message   string
	At        time.Time
}

// PollingPolicy drives background refresh for a mounted panel. Interval of
// zero (or Enabled=false) disables polling entirely.
type PollingPolicy struct {
	Interval time.Duration
	Enabled  bool
	Silent   bool
}

// QuickAction is a one-shot operation exposed by the quick actions panel.
type QuickAction struct {
	Label string
	Op    string
	Icon  string
}
