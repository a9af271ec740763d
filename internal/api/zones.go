package api

import (
	"context"
	"net/http"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// ZonePayload is the writable subset of a zone
type ZonePayload struct {
	Name        string              `json:"name"`
	Severity    models.ZoneSeverity `json:"severity"`
	Status      models.ZoneStatus   `json:"status"`
	Description string              `json:"description"`
	Radius      float64             `json:"radius"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
}

// ListZones retrieves every danger zone
func (c *Client) ListZones(ctx context.Context) ([]models.Zone, error) {
	var zones []models.Zone
	if err := c.do(ctx, http.MethodGet, "/danger-area", nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// CreateZone submits a new danger zone and returns the server's copy
func (c *Client) CreateZone(ctx context.Context, payload ZonePayload) (*models.Zone, error) {
	var zone models.Zone
	if err := c.do(ctx, http.MethodPost, "/danger-area", payload, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

// UpdateZone rewrites an existing danger zone
func (c *Client) UpdateZone(ctx context.Context, id string, payload ZonePayload) (*models.Zone, error) {
	var zone models.Zone
	if err := c.do(ctx, http.MethodPut, "/danger-area/"+id, payload, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

// DeleteZone removes a danger zone
func (c *Client) DeleteZone(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/danger-area/"+id, nil, nil)
}
