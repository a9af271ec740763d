// Package presence keeps the realtime socket to the platform: it
// announces the logged-in admin as online and can join the location
// feed. Delivery is best effort; there is no reconnect policy beyond
// what the transport provides.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/session"
)

// State is the connection lifecycle of the presence channel
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return "disconnected"
}

// registerEvent announces the admin on the default namespace
type registerEvent struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
}

// LocationUpdate is one message from the location namespace
type LocationUpdate struct {
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Client owns the presence connection for one console session
type Client struct {
	socketURL string
	sessions  *session.Store
	log       *logrus.Logger
	dialer    *websocket.Dialer

	mu      sync.Mutex
	state   State
	conn    *websocket.Conn
	locConn *websocket.Conn
}

// New creates a disconnected presence client
func New(socketURL string, sessions *session.Store, log *logrus.Logger) *Client {
	return &Client{
		socketURL: socketURL,
		sessions:  sessions,
		log:       log,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// State returns the current connection state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the default namespace and registers the admin as
// online. It refuses to dial without an authenticated session.
func (c *Client) Connect(ctx context.Context) error {
	token := c.sessions.AccessToken()
	if token == "" {
		return fmt.Errorf("presence requires an authenticated session")
	}
	admin := c.sessions.User()
	if admin == nil {
		return fmt.Errorf("presence requires a loaded admin profile")
	}

	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		return fmt.Errorf("presence already %s", c.state)
	}
	c.state = Connecting
	c.mu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.socketURL+"?token="+token, nil)
	if err != nil {
		c.setState(Disconnected)
		return fmt.Errorf("dialing presence socket: %w", err)
	}

	if err := conn.WriteJSON(registerEvent{Event: "register_online", UserID: admin.ID}); err != nil {
		conn.Close()
		c.setState(Disconnected)
		return fmt.Errorf("announcing presence: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = Connected
	c.mu.Unlock()

	c.log.WithField("user_id", admin.ID).Info("presence registered")
	return nil
}

// JoinLocationFeed dials the location namespace and delivers decoded
// updates to fn until the connection drops or the client closes.
func (c *Client) JoinLocationFeed(ctx context.Context, fn func(LocationUpdate)) error {
	token := c.sessions.AccessToken()
	if token == "" {
		return fmt.Errorf("location feed requires an authenticated session")
	}

	conn, _, err := c.dialer.DialContext(ctx, c.socketURL+"/location?token="+token, nil)
	if err != nil {
		return fmt.Errorf("dialing location feed: %w", err)
	}

	c.mu.Lock()
	c.locConn = conn
	c.mu.Unlock()

	go func() {
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.log.WithError(err).Debug("location feed closed")
				return
			}
			var update LocationUpdate
			if err := json.Unmarshal(data, &update); err != nil {
				c.log.WithError(err).Warn("malformed location update")
				continue
			}
			fn(update)
		}
	}()
	return nil
}

// Close disconnects both namespaces. Safe to call when already
// disconnected.
func (c *Client) Close() error {
	c.mu.Lock()
	conn, locConn := c.conn, c.locConn
	c.conn, c.locConn = nil, nil
	c.state = Disconnected
	c.mu.Unlock()

	if locConn != nil {
		locConn.Close()
	}
	if conn != nil {
		// A close frame is a courtesy; ignore failures on teardown.
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		return conn.Close()
	}
	return nil
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
