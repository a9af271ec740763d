package models

import "time"

// SOSAlert represents an emergency signal triggered by an end user,
// tracked until security marks it resolved.
type SOSAlert struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}
