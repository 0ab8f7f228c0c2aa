package console

import (
	"context"
	"testing"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

func TestKindOfMapsWireStrings(t *testing.T) {
	cases := map[string]EventKind{
		"user_registration":  EventUserRegistration,
		"response_submitted": EventResponseSubmitted,
		"training_job":       EventTrainingJob,
		"system_backup":      EventSystemBackup,
		"system_maintenance": EventSystemMaintenance,
		"something_new":      EventOther,
		"":                   EventOther,
	}
	for wire, want := range cases {
		if got := KindOf(wire); got != want {
			t.Fatalf("KindOf(%q) = %v, want %v", wire, got, want)
		}
	}
}

func TestClassifyEventBadges(t *testing.T) {
	cases := []struct {
		name  string
		event adminapi.ActivityEvent
		want  BadgeVariant
	}{
		{"registration", adminapi.ActivityEvent{EventType: "user_registration"}, BadgeInfo},
		{"response", adminapi.ActivityEvent{EventType: "response_submitted"}, BadgeSuccess},
		{"backup", adminapi.ActivityEvent{EventType: "system_backup"}, BadgeNeutral},
		{"maintenance", adminapi.ActivityEvent{EventType: "system_maintenance"}, BadgeWarning},
		{"unknown", adminapi.ActivityEvent{EventType: "mystery"}, BadgeNeutral},
		{
			"training failed",
			adminapi.ActivityEvent{EventType: "training_job", Metadata: map[string]any{"job_status": "failed"}},
			BadgeDanger,
		},
		{
			"training completed",
			adminapi.ActivityEvent{EventType: "training_job", Metadata: map[string]any{"job_status": "completed"}},
			BadgeSuccess,
		},
		{
			"training running",
			adminapi.ActivityEvent{EventType: "training_job", Metadata: map[string]any{"job_status": "running"}},
			BadgeInProgress,
		},
		{
			"training no metadata",
			adminapi.ActivityEvent{EventType: "training_job"},
			BadgeInProgress,
		},
	}
	for _, tc := range cases {
		if got := ClassifyEvent(tc.event); got != tc.want {
			t.Fatalf("%s: ClassifyEvent = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNewActivityPanelFetchesFeed(t *testing.T) {
	client := adminapi.NewMockClient(adminapi.MockData{
		Activity: adminapi.ActivityPage{
			Events: []adminapi.ActivityEvent{{EventType: "user_registration"}},
		},
	})
	p := NewActivityPanel(client, 5)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	snap := p.Snapshot()
	if !snap.HasData() || len(snap.Data.Events) != 1 {
		t.Fatalf("expected one event, got %+v", snap.Data)
	}
	if p.Code() != PanelActivityFeed {
		t.Fatalf("unexpected panel code %q", p.Code())
	}
}

func TestActivityPageEmptyState(t *testing.T) {
	empty := adminapi.ActivityPage{}
	if !empty.Empty() {
		t.Fatalf("expected empty page")
	}
	if empty.CanLoadMore() {
		t.Fatalf("empty page must not offer load-more")
	}

	populated := adminapi.ActivityPage{
		Events:     []adminapi.ActivityEvent{{EventType: "user_registration"}},
		Pagination: adminapi.Pagination{HasMore: true},
	}
	if populated.Empty() {
		t.Fatalf("expected populated page")
	}
	if !populated.CanLoadMore() {
		t.Fatalf("expected load-more available")
	}
}
