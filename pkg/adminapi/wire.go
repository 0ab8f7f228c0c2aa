package adminapi

import "time"

// Wire DTOs mirror the JSON shapes inside the envelope's data field. They are
// decoded verbatim and converted into the exported domain types.

type activityEventDTO struct {
	EventType   string         `json:"event_type"`
	UserID      string         `json:"user_id,omitempty"`
	Email       string         `json:"email,omitempty"`
	Name        string         `json:"name,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	TimeAgo     string         `json:"time_ago"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type activitySummaryDTO struct {
	WindowHours int            `json:"window_hours"`
	Counts      map[string]int `json:"counts"`
}

type paginationDTO struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

type activityFeedResponse struct {
	Activities []activityEventDTO `json:"activities"`
	Summary    activitySummaryDTO `json:"summary"`
	Pagination paginationDTO      `json:"pagination"`
}

func (r activityFeedResponse) toPage() *ActivityPage {
	events := make([]ActivityEvent, len(r.Activities))
	for i, a := range r.Activities {
		events[i] = ActivityEvent{
			EventType:   a.EventType,
			UserID:      a.UserID,
			Email:       a.Email,
			Name:        a.Name,
			CreatedAt:   a.CreatedAt,
			TimeAgo:     a.TimeAgo,
			Description: a.Description,
			Metadata:    a.Metadata,
		}
	}
	counts := make(map[string]int, len(r.Summary.Counts))
	for k, v := range r.Summary.Counts {
		counts[k] = v
	}
	return &ActivityPage{
		Events:  events,
		Summary: ActivitySummary{WindowHours: r.Summary.WindowHours, Counts: counts},
		Pagination: Pagination{
			Limit:   r.Pagination.Limit,
			Offset:  r.Pagination.Offset,
			Total:   r.Pagination.Total,
			HasMore: r.Pagination.HasMore,
		},
	}
}

type trendPointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func toTrend(points []trendPointDTO) []TrendPoint {
	if len(points) == 0 {
		return nil
	}
	trend := make([]TrendPoint, 0, len(points))
	for _, p := range points {
		day, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			continue
		}
		trend = append(trend, TrendPoint{Date: day, Value: p.Value})
	}
	return trend
}

type overviewResponse struct {
	UserMetrics struct {
		TotalUsers  int             `json:"total_users"`
		ActiveUsers int             `json:"active_users"`
		NewUsers30d int             `json:"new_users_30d"`
		SignupTrend []trendPointDTO `json:"signup_trend,omitempty"`
	} `json:"user_metrics"`
	EngagementMetrics struct {
		TotalResponses      int             `json:"total_responses"`
		ResponsesThisWeek   int             `json:"responses_this_week"`
		AvgResponsesPerUser float64         `json:"avg_responses_per_user"`
		ResponseTrend       []trendPointDTO `json:"response_trend,omitempty"`
	} `json:"engagement_metrics"`
	TrainingMetrics struct {
		ActiveJobs    int `json:"active_jobs"`
		CompletedJobs int `json:"completed_jobs"`
		FailedJobs    int `json:"failed_jobs"`
	} `json:"training_metrics"`
	RetentionMetrics struct {
		WeeklyRetention  float64 `json:"weekly_retention"`
		MonthlyRetention float64 `json:"monthly_retention"`
	} `json:"retention_metrics"`
}

func (r overviewResponse) toMetrics() *OverviewMetrics {
	return &OverviewMetrics{
		UserMetrics: UserMetrics{
			TotalUsers:  r.UserMetrics.TotalUsers,
			ActiveUsers: r.UserMetrics.ActiveUsers,
			NewUsers30d: r.UserMetrics.NewUsers30d,
			SignupTrend: toTrend(r.UserMetrics.SignupTrend),
		},
		EngagementMetrics: EngagementMetrics{
			TotalResponses:      r.EngagementMetrics.TotalResponses,
			ResponsesThisWeek:   r.EngagementMetrics.ResponsesThisWeek,
			AvgResponsesPerUser: r.EngagementMetrics.AvgResponsesPerUser,
			ResponseTrend:       toTrend(r.EngagementMetrics.ResponseTrend),
		},
		TrainingMetrics: TrainingMetrics{
			ActiveJobs:    r.TrainingMetrics.ActiveJobs,
			CompletedJobs: r.TrainingMetrics.CompletedJobs,
			FailedJobs:    r.TrainingMetrics.FailedJobs,
		},
		RetentionMetrics: RetentionMetrics{
			WeeklyRetention:  r.RetentionMetrics.WeeklyRetention,
			MonthlyRetention: r.RetentionMetrics.MonthlyRetention,
		},
	}
}

type healthResponse struct {
	OverallHealth string `json:"overall_health"`
	Database      struct {
		Status    string  `json:"status"`
		LatencyMS float64 `json:"latency_ms"`
	} `json:"database"`
	Errors struct {
		RatePerMinute float64 `json:"rate_per_minute"`
		LastHour      int     `json:"last_hour"`
	} `json:"errors"`
	TrainingSystem struct {
		Status     string `json:"status"`
		QueueDepth int    `json:"queue_depth"`
	} `json:"training_system"`
	SystemPerformance struct {
		CPUPercent    float64 `json:"cpu_percent"`
		MemoryPercent float64 `json:"memory_percent"`
	} `json:"system_performance"`
	Services []struct {
		Name    string `json:"name"`
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"services"`
	Alerts []struct {
		Severity  string    `json:"severity"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"alerts"`
}

func (r healthResponse) toReport() *HealthReport {
	report := &HealthReport{
		OverallHealth: r.OverallHealth,
		Database:      DatabaseHealth{Status: r.Database.Status, LatencyMS: r.Database.LatencyMS},
		Errors:        ErrorHealth{RatePerMinute: r.Errors.RatePerMinute, LastHour: r.Errors.LastHour},
		TrainingSystem: TrainingHealth{
			Status:     r.TrainingSystem.Status,
			QueueDepth: r.TrainingSystem.QueueDepth,
		},
		SystemPerformance: SystemPerformance{
			CPUPercent:    r.SystemPerformance.CPUPercent,
			MemoryPercent: r.SystemPerformance.MemoryPercent,
		},
	}
	for _, s := range r.Services {
		report.Services = append(report.Services, ServiceStatus{Name: s.Name, Status: s.Status, Message: s.Message})
	}
	for _, a := range r.Alerts {
		report.Alerts = append(report.Alerts, HealthAlert{Severity: a.Severity, Message: a.Message, CreatedAt: a.CreatedAt})
	}
	return report
}

type userRecordDTO struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_active"`
	IsAdmin       bool       `json:"is_admin"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	ResponseCount int        `json:"response_count"`
}

type userPageResponse struct {
	Users      []userRecordDTO `json:"users"`
	Pagination struct {
		TotalPages int `json:"totalPages"`
		TotalUsers int `json:"totalUsers"`
	} `json:"pagination"`
}

func (r userPageResponse) toPage() *UserPage {
	users := make([]UserRecord, len(r.Users))
	for i, u := range r.Users {
		users[i] = UserRecord{
			ID:            u.ID,
			Email:         u.Email,
			Name:          u.Name,
			Role:          u.Role,
			IsActive:      u.IsActive,
			IsAdmin:       u.IsAdmin,
			CreatedAt:     u.CreatedAt,
			LastLoginAt:   u.LastLoginAt,
			ResponseCount: u.ResponseCount,
		}
	}
	return &UserPage{
		Users:      users,
		TotalPages: r.Pagination.TotalPages,
		TotalUsers: r.Pagination.TotalUsers,
	}
}

type resetPasswordRequest struct {
	SendEmail bool   `json:"sendEmail"`
	Reason    string `json:"reason,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type recoveryCatalogResponse struct {
	RecoveryActions []struct {
		Context string `json:"context"`
		Actions []struct {
			ID          string `json:"id"`
			Label       string `json:"label"`
			Description string `json:"description,omitempty"`
			Severity    string `json:"severity,omitempty"`
		} `json:"actions"`
	} `json:"recoveryActions"`
}

func (r recoveryCatalogResponse) toGroups() []RecoveryGroup {
	groups := make([]RecoveryGroup, 0, len(r.RecoveryActions))
	for _, g := range r.RecoveryActions {
		group := RecoveryGroup{Context: g.Context}
		for _, a := range g.Actions {
			group.Actions = append(group.Actions, RecoveryAction{
				ID:          a.ID,
				Label:       a.Label,
				Description: a.Description,
				Severity:    a.Severity,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

type executeRecoveryRequest struct {
	ActionID     string   `json:"actionId"`
	Context      string   `json:"context"`
	ErrorDetails []string `json:"errorDetails"`
}
