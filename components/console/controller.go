package console

import "context"

// Controller exposes thin, transport-friendly entry points over the Service.
type Controller struct {
	service *Service
}

// NewController wires the service into a controller.
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Definitions lists the registered panel definitions.
func (c *Controller) Definitions(ctx context.Context) []PanelDefinition {
	if c.service == nil {
		return nil
	}
	return c.service.Registry().Definitions()
}

// QuickActions lists the available operational shortcuts.
func (c *Controller) QuickActions(ctx context.Context) []QuickAction {
	return DefaultQuickActions()
}

// ExecuteOp runs a quick action by operation code.
func (c *Controller) ExecuteOp(ctx context.Context, op string) error {
	if c.service == nil {
		return errMissingClient
	}
	return c.service.ExecuteOp(ctx, op)
}
