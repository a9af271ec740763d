// Package api is the gateway to the campus safety platform. It
// attaches the bearer token to every call, unwraps the response
// envelope, classifies failures, and applies the single 401 policy:
// refresh the access token once and replay, otherwise clear the
// session so the shell can route back to login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/session"
)

// Client wraps outbound HTTP calls to the platform API
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	log        *logrus.Logger
}

// New creates an API client. The session store supplies the bearer
// token and absorbs the consequences of authorization failures.
func New(baseURL string, timeout time.Duration, sessions *session.Store, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sessions: sessions,
		log:      log,
	}
}

// do issues one API call. body is JSON-encoded when non-nil; target
// receives the unwrapped envelope payload when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, target any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetwork, Message: fmt.Sprintf("encoding request: %v", err)}
		}
	}

	status, respBody, err := c.send(ctx, method, path, payload, c.sessions.AccessToken())
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		status, respBody, err = c.handleUnauthorized(ctx, method, path, payload)
		if err != nil {
			return err
		}
	}

	if status >= 200 && status < 300 {
		if target == nil {
			return nil
		}
		return decodePayload(respBody, target)
	}

	return &Error{Kind: kindForStatus(status), Status: status, Message: errorMessage(respBody)}
}

// handleUnauthorized implements the refresh-then-retry-once policy.
// Any outcome other than a successful replay clears the session.
func (c *Client) handleUnauthorized(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	refreshToken := c.sessions.RefreshToken()
	if refreshToken == "" {
		return c.forceLogout()
	}

	accessToken, err := c.refreshAccessToken(ctx, refreshToken)
	if err != nil {
		c.log.WithError(err).Warn("token refresh failed")
		return c.forceLogout()
	}
	if err := c.sessions.SetAccessToken(accessToken); err != nil {
		c.log.WithError(err).Warn("persisting refreshed token failed")
	}

	status, respBody, sendErr := c.send(ctx, method, path, payload, accessToken)
	if sendErr != nil {
		return 0, nil, sendErr
	}
	if status == http.StatusUnauthorized {
		return c.forceLogout()
	}
	return status, respBody, nil
}

func (c *Client) forceLogout() (int, []byte, error) {
	if err := c.sessions.Clear(); err != nil {
		c.log.WithError(err).Warn("clearing session failed")
	}
	return 0, nil, &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: "session expired"}
}

// send performs a single HTTP round trip and drains the body
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Message: fmt.Sprintf("creating request: %v", err)}
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Message: fmt.Sprintf("reading response: %v", err)}
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("api call")

	return resp.StatusCode, respBody, nil
}

// refreshAccessToken exchanges the refresh token for a new access
// token. It bypasses do to avoid recursing into the 401 policy.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return "", fmt.Errorf("encoding refresh request: %w", err)
	}

	status, respBody, sendErr := c.send(ctx, http.MethodPost, "/auth/refresh", payload, "")
	if sendErr != nil {
		return "", sendErr
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("refresh endpoint returned status %d", status)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodePayload(respBody, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	return out.AccessToken, nil
}
