package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// NotificationPayload is the compose-form submission shape
type NotificationPayload struct {
	Title       string                      `json:"title"`
	Content     string                      `json:"content"`
	Type        models.NotificationType     `json:"type"`
	Priority    models.NotificationPriority `json:"priority"`
	Audience    models.Audience             `json:"audience"`
	ScheduledAt *time.Time                  `json:"scheduled_at,omitempty"`
}

// ListAlerts retrieves the immediate-alert half of the feed
func (c *Client) ListAlerts(ctx context.Context) ([]models.Notification, error) {
	var alerts []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notification/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// ListAnnouncements retrieves the announcement half of the feed
func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Notification, error) {
	var announcements []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notification/announcements", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// CreateNotification sends an alert or schedules an announcement
func (c *Client) CreateNotification(ctx context.Context, payload NotificationPayload) (*models.Notification, error) {
	var notification models.Notification
	if err := c.do(ctx, http.MethodPost, "/notification/alerts", payload, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification removes a notification from the feed
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notification/alerts/"+id, nil, nil)
}
