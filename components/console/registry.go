package console

import (
	"fmt"
	"sync"
)

// PanelHook lets packages register panel definitions during init().
type PanelHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PanelHook
)

// RegisterPanelHook registers a hook executed against new registries.
func RegisterPanelHook(h PanelHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements PanelRegistry with hook + manifest support.
type Registry struct {
	mu           sync.RWMutex
	definitions  map[string]PanelDefinition
	manifestMeta map[string]ManifestSource
}

// NewRegistry builds a registry pre-populated with the built-in panel
// definitions and applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions:  map[string]PanelDefinition{},
		manifestMeta: map[string]ManifestSource{},
	}
	for _, def := range DefaultPanelDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered panel hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores panel metadata.
func (r *Registry) RegisterDefinition(def PanelDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("console: panel definition code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// Definition fetches a panel definition by code.
func (r *Registry) Definition(code string) (PanelDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Definitions returns all registered definitions.
func (r *Registry) Definitions() []PanelDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]PanelDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	return defs
}

// SourceMetadata returns any manifest metadata registered for a panel.
func (r *Registry) SourceMetadata(code string) (ManifestSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[code]
	return meta, ok
}

func (r *Registry) recordSourceMetadata(code string, meta ManifestSource) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[code] = meta
}
