package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// loginResponse is the session bootstrap payload
type loginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// Login exchanges credentials for a session and persists it
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]string{"email": email, "password": password}

	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &Error{Kind: KindBadEnvelope, Message: "login response missing access token"}
	}

	if err := c.sessions.Set(out.AccessToken, out.RefreshToken, out.User); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return out.User, nil
}

// Profile fetches the logged-in admin's record and caches it in the
// session store.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &user); err != nil {
		return nil, err
	}
	if err := c.sessions.SetUser(&user); err != nil {
		return nil, fmt.Errorf("persisting profile: %w", err)
	}
	return &user, nil
}
