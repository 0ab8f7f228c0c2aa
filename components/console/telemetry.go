package console

import "context"

// Telemetry records console events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error { return nil }

func normalizeRefreshHook(h RefreshHook) RefreshHook {
	if h == nil {
		return noopRefreshHook{}
	}
	return h
}
