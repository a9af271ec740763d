package api

import (
	"context"
	"net/http"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// ListIncidents retrieves every reported incident
func (c *Client) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	var incidents []models.Incident
	if err := c.do(ctx, http.MethodGet, "/report", nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// UpdateIncidentStatus transitions an incident through its review
// lifecycle. The server is the source of truth; the returned copy
// replaces the local one.
func (c *Client) UpdateIncidentStatus(ctx context.Context, id string, status models.IncidentStatus) (*models.Incident, error) {
	payload := map[string]models.IncidentStatus{"status": status}
	var incident models.Incident
	if err := c.do(ctx, http.MethodPatch, "/report/"+id, payload, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}
