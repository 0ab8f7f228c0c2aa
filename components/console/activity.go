package console

import (
	"context"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// EventKind is the closed set of activity event types the console renders.
// Wire strings outside the set map to EventOther rather than being dropped.
type EventKind int

const (
	EventUserRegistration EventKind = iota
	EventResponseSubmitted
	EventTrainingJob
	EventSystemBackup
	EventSystemMaintenance
	EventOther
)

func (k EventKind) String() string {
	switch k {
	case EventUserRegistration:
		return "user_registration"
	case EventResponseSubmitted:
		return "response_submitted"
	case EventTrainingJob:
		return "training_job"
	case EventSystemBackup:
		return "system_backup"
	case EventSystemMaintenance:
		return "system_maintenance"
	case EventOther:
		return "other"
	default:
		return "other"
	}
}

// KindOf maps a wire event type onto the closed enum.
func KindOf(eventType string) EventKind {
	switch eventType {
	case "user_registration":
		return EventUserRegistration
	case "response_submitted":
		return EventResponseSubmitted
	case "training_job":
		return EventTrainingJob
	case "system_backup":
		return EventSystemBackup
	case "system_maintenance":
		return EventSystemMaintenance
	default:
		return EventOther
	}
}

// BadgeVariant classifies an event for rendering. The values are stable
// identifiers consumed by front-ends, not CSS classes.
type BadgeVariant string

const (
	BadgeInfo       BadgeVariant = "blue"
	BadgeSuccess    BadgeVariant = "green"
	BadgeDanger     BadgeVariant = "red"
	BadgeInProgress BadgeVariant = "indigo"
	BadgeWarning    BadgeVariant = "amber"
	BadgeNeutral    BadgeVariant = "slate"
)

// ClassifyEvent resolves the badge variant for an activity event. Training
// job events consult metadata.job_status: failed jobs are danger, completed
// jobs success, anything else in-progress.
func ClassifyEvent(event adminapi.ActivityEvent) BadgeVariant {
	switch KindOf(event.EventType) {
	case EventUserRegistration:
		return BadgeInfo
	case EventResponseSubmitted:
		return BadgeSuccess
	case EventTrainingJob:
		status, _ := event.Metadata["job_status"].(string)
		switch status {
		case "failed":
			return BadgeDanger
		case "completed":
			return BadgeSuccess
		default:
			return BadgeInProgress
		}
	case EventSystemBackup:
		return BadgeNeutral
	case EventSystemMaintenance:
		return BadgeWarning
	case EventOther:
		return BadgeNeutral
	default:
		return BadgeNeutral
	}
}

// NewActivityPanel builds a polling panel over the admin activity feed.
func NewActivityPanel(client adminapi.Client, limit int, opts ...PanelOption[adminapi.ActivityPage]) *Panel[adminapi.ActivityPage] {
	if limit <= 0 {
		limit = 10
	}
	fetch := func(ctx context.Context) (*adminapi.ActivityPage, error) {
		return client.ActivityFeed(ctx, adminapi.ActivityQuery{Limit: limit})
	}
	return NewPanel(PanelActivityFeed, fetch, opts...)
}
