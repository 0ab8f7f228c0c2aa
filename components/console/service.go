package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
	"github.com/everkeep/go-admin-console/pkg/recovery"
)

// Operation codes for the quick-action surface.
const (
	OpStartTraining = "ops.training.start"
	OpPauseTraining = "ops.training.pause"
	OpTriggerBackup = "ops.backup.trigger"
)

var (
	errMissingClient = errors.New("console: admin API client not configured")

	// ErrUnknownOp rejects operation codes outside the quick-action set.
	ErrUnknownOp = errors.New("console: unknown operation")
)

// Options configures the console Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Client          adminapi.Client
	Registry        PanelRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry

	// Breaker and Retry guard every panel fetch. A nil breaker passes calls
	// through; a zero retry policy means a single attempt.
	Breaker *recovery.CircuitBreaker
	Retry   recovery.RetryPolicy

	// Policies sets per-panel polling behavior, keyed by panel code.
	Policies map[string]PollingPolicy

	// ActivityLimit caps the activity feed page size (default 10).
	ActivityLimit int
}

// Service orchestrates the admin console panels on top of the platform API.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.RefreshHook = normalizeRefreshHook(opts.RefreshHook)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = 10
	}
	return &Service{opts: opts}
}

// Client returns the configured admin API client.
func (s *Service) Client() adminapi.Client { return s.opts.Client }

// Registry returns the panel definition registry.
func (s *Service) Registry() PanelRegistry { return s.opts.Registry }

// guardFetch wraps a fetch with the service's circuit breaker and retry
// policy. Application-level rejections are marked unretryable so the retry
// loop fails fast; partial payloads returned alongside an error pass through
// to the panel.
func guardFetch[T any](breaker *recovery.CircuitBreaker, policy recovery.RetryPolicy, fetch FetchFunc[T]) FetchFunc[T] {
	return func(ctx context.Context) (*T, error) {
		var out *T
		attempt := func(ctx context.Context) error {
			data, err := fetch(ctx)
			if data != nil {
				out = data
			}
			if err != nil {
				var apiErr *adminapi.APIError
				if errors.As(err, &apiErr) {
					return recovery.Unretryable(err)
				}
				return err
			}
			return nil
		}
		run := attempt
		if breaker != nil {
			run = func(ctx context.Context) error {
				err := breaker.Do(ctx, attempt)
				if errors.Is(err, recovery.ErrOpen) {
					// Retrying against an open breaker burns attempts
					// without reaching the dependency.
					return recovery.Unretryable(err)
				}
				return err
			}
		}
		err := policy.Do(ctx, run)
		return out, err
	}
}

func panelOptions[T any](s *Service, code string) []PanelOption[T] {
	opts := []PanelOption[T]{
		WithPanelHook[T](s.opts.RefreshHook),
		WithPanelTelemetry[T](s.opts.Telemetry),
	}
	if policy, ok := s.opts.Policies[code]; ok {
		opts = append(opts, WithPolicy[T](policy))
	}
	return opts
}

// ActivityPanel builds the activity feed panel with the service's guards,
// hook, telemetry, and polling policy applied.
func (s *Service) ActivityPanel(extra ...PanelOption[adminapi.ActivityPage]) *Panel[adminapi.ActivityPage] {
	fetch := guardFetch(s.opts.Breaker, s.opts.Retry, func(ctx context.Context) (*adminapi.ActivityPage, error) {
		return s.opts.Client.ActivityFeed(ctx, adminapi.ActivityQuery{Limit: s.opts.ActivityLimit})
	})
	opts := append(panelOptions[adminapi.ActivityPage](s, PanelActivityFeed), extra...)
	return NewPanel(PanelActivityFeed, fetch, opts...)
}

// HealthPanel builds the system health panel. Partial reports shipped
// alongside an application-level failure are adopted.
func (s *Service) HealthPanel(extra ...PanelOption[adminapi.HealthReport]) *Panel[adminapi.HealthReport] {
	fetch := guardFetch(s.opts.Breaker, s.opts.Retry, func(ctx context.Context) (*adminapi.HealthReport, error) {
		return s.opts.Client.Health(ctx)
	})
	opts := append(panelOptions[adminapi.HealthReport](s, PanelSystemHealth), WithPartialAdoption[adminapi.HealthReport]())
	opts = append(opts, extra...)
	return NewPanel(PanelSystemHealth, fetch, opts...)
}

// MetricsPanel builds the overview metrics panel.
func (s *Service) MetricsPanel(extra ...PanelOption[adminapi.OverviewMetrics]) *Panel[adminapi.OverviewMetrics] {
	fetch := guardFetch(s.opts.Breaker, s.opts.Retry, func(ctx context.Context) (*adminapi.OverviewMetrics, error) {
		return s.opts.Client.Overview(ctx)
	})
	opts := append(panelOptions[adminapi.OverviewMetrics](s, PanelOverviewMetrics), extra...)
	return NewPanel(PanelOverviewMetrics, fetch, opts...)
}

// Users builds the user directory backed by the service's client.
func (s *Service) Users(opts ...UserDirectoryOption) *UserDirectory {
	opts = append([]UserDirectoryOption{WithUserTelemetry(s.opts.Telemetry)}, opts...)
	return NewUserDirectory(s.opts.Client, opts...)
}

// Recovery builds the recovery console backed by the service's client.
func (s *Service) Recovery(opts ...RecoveryOption) *RecoveryConsole {
	opts = append([]RecoveryOption{
		WithRecoveryHook(s.opts.RefreshHook),
		WithRecoveryTelemetry(s.opts.Telemetry),
	}, opts...)
	return NewRecoveryConsole(s.opts.Client, opts...)
}

// Overview builds the combined overview fetcher.
func (s *Service) Overview() *Overview {
	return NewOverview(s.opts.Client, s.opts.ActivityLimit, s.opts.Telemetry)
}

// ValidatePanelConfig checks a configuration payload against the registered
// panel definition's schema.
func (s *Service) ValidatePanelConfig(code string, config map[string]any) error {
	def, ok := s.opts.Registry.Definition(code)
	if !ok {
		return fmt.Errorf("console: panel definition %s not found", code)
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

// NotifyPanelUpdated pushes a panel event to the refresh hook on behalf of a
// caller outside the panel lifecycle (manual refresh endpoints, ops).
func (s *Service) NotifyPanelUpdated(ctx context.Context, code, reason, message string) error {
	return s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		PanelCode: code,
		Reason:    reason,
		Message:   message,
		At:        time.Now(),
	})
}

// ExecuteOp runs a quick action by operation code.
func (s *Service) ExecuteOp(ctx context.Context, op string) error {
	switch op {
	case OpStartTraining:
		return s.StartTraining(ctx)
	case OpPauseTraining:
		return s.PauseTraining(ctx)
	case OpTriggerBackup:
		return s.TriggerBackup(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}

// StartTraining kicks off the model training pipeline.
func (s *Service) StartTraining(ctx context.Context) error {
	return s.runOp(ctx, OpStartTraining, s.opts.Client.StartTraining)
}

// PauseTraining pauses the model training pipeline.
func (s *Service) PauseTraining(ctx context.Context) error {
	return s.runOp(ctx, OpPauseTraining, s.opts.Client.PauseTraining)
}

// TriggerBackup starts a platform backup.
func (s *Service) TriggerBackup(ctx context.Context) error {
	return s.runOp(ctx, OpTriggerBackup, s.opts.Client.TriggerBackup)
}

func (s *Service) runOp(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if s.opts.Client == nil {
		return errMissingClient
	}
	if err := fn(ctx); err != nil {
		s.opts.Telemetry.Record(ctx, "console.ops.error", map[string]any{
			"op":    op,
			"error": err.Error(),
		})
		return fmt.Errorf("console: %s: %w", op, err)
	}
	s.opts.Telemetry.Record(ctx, "console.ops.executed", map[string]any{"op": op})
	return s.NotifyPanelUpdated(ctx, PanelQuickActions, "notice", op)
}
