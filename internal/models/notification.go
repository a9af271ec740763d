package models

import (
	"fmt"
	"time"
)

// NotificationType distinguishes immediate alerts from schedulable
// announcements.
type NotificationType string

const (
	TypeAlert        NotificationType = "alert"
	TypeAnnouncement NotificationType = "announcement"
)

// NotificationPriority represents how urgently a message is surfaced
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// Audience represents who receives a notification
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceStudents Audience = "students"
	AudienceStaff    Audience = "staff"
	AudienceFaculty  Audience = "faculty"
)

// DeliveryMode selects between immediate and scheduled delivery
type DeliveryMode string

const (
	DeliverNow      DeliveryMode = "now"
	DeliverSchedule DeliveryMode = "schedule"
)

// ErrScheduledInPast is the exact message shown when a scheduled
// announcement points backwards in time.
const ErrScheduledInPast = "Scheduled time cannot be in the past"

// Notification represents an admin-originated message. Alerts go out
// immediately; announcements may carry a future delivery time.
type Notification struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Type        NotificationType     `json:"type"`
	Priority    NotificationPriority `json:"priority"`
	Audience    Audience             `json:"audience"`
	ScheduledAt *time.Time           `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// NotificationDraft is the compose-form payload, validated before any
// network call is attempted.
type NotificationDraft struct {
	Title       string
	Content     string
	Type        NotificationType
	Priority    NotificationPriority
	Audience    Audience
	Mode        DeliveryMode
	ScheduledAt *time.Time
}

// Validate enforces the compose rules client-side
func (d *NotificationDraft) Validate(now time.Time) error {
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}
	if d.Content == "" {
		return fmt.Errorf("content is required")
	}
	if d.Type == TypeAnnouncement && d.Mode == DeliverSchedule {
		if d.ScheduledAt == nil {
			return fmt.Errorf("scheduled time is required for scheduled announcements")
		}
		if !d.ScheduledAt.After(now) {
			return fmt.Errorf("%s", ErrScheduledInPast)
		}
	}
	return nil
}

// FeedLess orders the merged notification feed: alerts before
// announcements, each group newest first.
func FeedLess(a, b Notification) bool {
	if a.Type != b.Type {
		return a.Type == TypeAlert
	}
	return a.CreatedAt.After(b.CreatedAt)
}
