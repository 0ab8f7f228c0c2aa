package adminapi

import (
	"context"
	"time"
)

// Client is the surface the console consumes. Implementations talk to the
// platform admin API; MockClient provides a configurable stand-in for tests.
type Client interface {
	ActivityFeed(ctx context.Context, query ActivityQuery) (*ActivityPage, error)
	Overview(ctx context.Context) (*OverviewMetrics, error)
	Health(ctx context.Context) (*HealthReport, error)
	Users(ctx context.Context, query UserQuery) (*UserPage, error)
	ToggleUserStatus(ctx context.Context, userID string) error
	ResetUserPassword(ctx context.Context, userID string, input ResetPasswordInput) (string, error)
	RecoveryCatalog(ctx context.Context) ([]RecoveryGroup, error)
	ExecuteRecovery(ctx context.Context, input ExecuteRecoveryInput) (string, error)
	StartTraining(ctx context.Context) error
	PauseTraining(ctx context.Context) error
	TriggerBackup(ctx context.Context) error
}

// ActivityQuery controls activity feed pagination.
type ActivityQuery struct {
	Limit  int
	Offset int
}

// ActivityEvent is a single entry in the platform activity feed.
type ActivityEvent struct {
	EventType   string
	UserID      string
	Email       string
	Name        string
	CreatedAt   time.Time
	TimeAgo     string
	Description string
	Metadata    map[string]any
}

// ActivitySummary aggregates feed counts by event type.
type ActivitySummary struct {
	WindowHours int
	Counts      map[string]int
}

// Pagination carries the server-side cursor state for list endpoints.
type Pagination struct {
	Limit   int
	Offset  int
	Total   int
	HasMore bool
}

// ActivityPage is one page of the activity feed.
type ActivityPage struct {
	Events     []ActivityEvent
	Summary    ActivitySummary
	Pagination Pagination
}

// Empty reports whether the page carries no events.
func (p ActivityPage) Empty() bool { return len(p.Events) == 0 }

// CanLoadMore reports whether a further page exists server-side.
func (p ActivityPage) CanLoadMore() bool { return p.Pagination.HasMore }

// TrendPoint is a dated value within a metric series.
type TrendPoint struct {
	Date  time.Time
	Value float64
}

// UserMetrics summarizes the user population.
type UserMetrics struct {
	TotalUsers  int
	ActiveUsers int
	NewUsers30d int
	SignupTrend []TrendPoint
}

// EngagementMetrics summarizes memory-response activity.
type EngagementMetrics struct {
	TotalResponses      int
	ResponsesThisWeek   int
	AvgResponsesPerUser float64
	ResponseTrend       []TrendPoint
}

// TrainingMetrics summarizes the model-training pipeline.
type TrainingMetrics struct {
	ActiveJobs    int
	CompletedJobs int
	FailedJobs    int
}

// RetentionMetrics summarizes returning-user rates.
type RetentionMetrics struct {
	WeeklyRetention  float64
	MonthlyRetention float64
}

// OverviewMetrics is the combined metrics payload for the overview dashboard.
type OverviewMetrics struct {
	UserMetrics       UserMetrics
	EngagementMetrics EngagementMetrics
	TrainingMetrics   TrainingMetrics
	RetentionMetrics  RetentionMetrics
}

// TrainingActive reports whether any training job is currently running.
func (m OverviewMetrics) TrainingActive() bool { return m.TrainingMetrics.ActiveJobs > 0 }

// ServiceStatus describes one dependent service inside the health report.
type ServiceStatus struct {
	Name    string
	Status  string
	Message string
}

// HealthAlert is an active alert surfaced by the health endpoint.
type HealthAlert struct {
	Severity  string
	Message   string
	CreatedAt time.Time
}

// DatabaseHealth captures storage-layer status.
type DatabaseHealth struct {
	Status    string
	LatencyMS float64
}

// ErrorHealth captures the platform error rates.
type ErrorHealth struct {
	RatePerMinute float64
	LastHour      int
}

// TrainingHealth captures training subsystem status.
type TrainingHealth struct {
	Status     string
	QueueDepth int
}

// SystemPerformance captures host-level utilisation.
type SystemPerformance struct {
	CPUPercent    float64
	MemoryPercent float64
}

// HealthReport is the full system health payload. The health endpoint may
// return a partial report alongside success=false; callers decide whether to
// adopt it (see console.WithPartialAdoption).
type HealthReport struct {
	OverallHealth     string
	Database          DatabaseHealth
	Errors            ErrorHealth
	TrainingSystem    TrainingHealth
	SystemPerformance SystemPerformance
	Services          []ServiceStatus
	Alerts            []HealthAlert
}

// Degraded reports whether the overall status is anything other than healthy.
func (r HealthReport) Degraded() bool {
	return r.OverallHealth != "" && r.OverallHealth != "healthy"
}

// UserRecord is one row of the user directory.
type UserRecord struct {
	ID            string
	Email         string
	Name          string
	Role          string
	IsActive      bool
	IsAdmin       bool
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	ResponseCount int
}

// RowID implements console.Row.
func (u UserRecord) RowID() string { return u.ID }

// UserQuery mirrors the server-side list parameters for /api/admin/users.
type UserQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// UserPage is one page of directory results plus its pagination envelope.
type UserPage struct {
	Users      []UserRecord
	TotalPages int
	TotalUsers int
}

// ResetPasswordInput configures the reset-password action.
type ResetPasswordInput struct {
	SendEmail bool
	Reason    string
}

// RecoveryAction is a single executable remediation.
type RecoveryAction struct {
	ID          string
	Label       string
	Description string
	Severity    string
}

// RecoveryGroup holds the actions available for one error context.
type RecoveryGroup struct {
	Context string
	Actions []RecoveryAction
}

// ExecuteRecoveryInput identifies the action to run and the errors it targets.
type ExecuteRecoveryInput struct {
	ActionID     string
	Context      string
	ErrorDetails []string
}
