package models

import (
	"testing"
	"time"
)

func TestNotificationDraft_Validate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		draft   NotificationDraft
		wantErr string
	}{
		{
			name:  "immediate alert",
			draft: NotificationDraft{Title: "Gas leak", Content: "Avoid the chemistry block", Type: TypeAlert, Mode: DeliverNow},
		},
		{
			name:    "missing title",
			draft:   NotificationDraft{Content: "body", Type: TypeAlert, Mode: DeliverNow},
			wantErr: "title is required",
		},
		{
			name:    "missing content",
			draft:   NotificationDraft{Title: "t", Type: TypeAlert, Mode: DeliverNow},
			wantErr: "content is required",
		},
		{
			name:  "scheduled announcement in the future",
			draft: NotificationDraft{Title: "Exam week", Content: "Quiet hours", Type: TypeAnnouncement, Mode: DeliverSchedule, ScheduledAt: &future},
		},
		{
			name:    "scheduled announcement in the past",
			draft:   NotificationDraft{Title: "Exam week", Content: "Quiet hours", Type: TypeAnnouncement, Mode: DeliverSchedule, ScheduledAt: &past},
			wantErr: ErrScheduledInPast,
		},
		{
			name:    "scheduled announcement at exactly now",
			draft:   NotificationDraft{Title: "Exam week", Content: "Quiet hours", Type: TypeAnnouncement, Mode: DeliverSchedule, ScheduledAt: &now},
			wantErr: ErrScheduledInPast,
		},
		{
			name:    "scheduled announcement without a time",
			draft:   NotificationDraft{Title: "Exam week", Content: "Quiet hours", Type: TypeAnnouncement, Mode: DeliverSchedule},
			wantErr: "scheduled time is required for scheduled announcements",
		},
		{
			name:  "announcement delivered now needs no time",
			draft: NotificationDraft{Title: "Exam week", Content: "Quiet hours", Type: TypeAnnouncement, Mode: DeliverNow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate(now)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFeedLess(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	alertOld := Notification{Type: TypeAlert, CreatedAt: older}
	alertNew := Notification{Type: TypeAlert, CreatedAt: newer}
	annNew := Notification{Type: TypeAnnouncement, CreatedAt: newer}

	if !FeedLess(alertOld, annNew) {
		t.Error("alerts should sort before announcements regardless of age")
	}
	if FeedLess(annNew, alertOld) {
		t.Error("announcements should not sort before alerts")
	}
	if !FeedLess(alertNew, alertOld) {
		t.Error("within a type, newer entries should sort first")
	}
}
