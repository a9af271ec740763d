package api

import (
	"context"
	"net/http"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// ListUsers retrieves the campus directory
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes an account from the directory
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

// ListSOSAlerts retrieves the panic alert feed
func (c *Client) ListSOSAlerts(ctx context.Context) ([]models.SOSAlert, error) {
	var alerts []models.SOSAlert
	if err := c.do(ctx, http.MethodGet, "/sos/get-all", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}
