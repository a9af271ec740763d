package models

import (
	"fmt"
	"time"
)

// ZoneSeverity represents the risk level of a danger zone
type ZoneSeverity string

const (
	SeverityLow    ZoneSeverity = "low"
	SeverityMedium ZoneSeverity = "medium"
	SeverityHigh   ZoneSeverity = "high"
)

// ZoneStatus represents the review state of a danger zone
type ZoneStatus string

const (
	ZoneActive      ZoneStatus = "active"
	ZoneInactive    ZoneStatus = "inactive"
	ZoneUnderReview ZoneStatus = "under_review"
)

const (
	MinZoneRadius = 10
	MaxZoneRadius = 1000
)

// Zone represents a geofenced area flagged as a safety risk
type Zone struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Severity      ZoneSeverity `json:"severity"`
	Status        ZoneStatus   `json:"status"`
	Description   string       `json:"description"`
	Radius        float64      `json:"radius"` // meters
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	IncidentCount int          `json:"incident_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Validate checks a zone payload before it is submitted to the API
func (z *Zone) Validate() error {
	if z.Name == "" {
		return fmt.Errorf("zone name is required")
	}
	if z.Radius < MinZoneRadius || z.Radius > MaxZoneRadius {
		return fmt.Errorf("radius must be between %d and %d meters", MinZoneRadius, MaxZoneRadius)
	}
	if z.Latitude < -90 || z.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if z.Longitude < -180 || z.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	switch z.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
	default:
		return fmt.Errorf("unknown severity %q", z.Severity)
	}
	return nil
}

// ParseZoneSeverity maps free-form severity text onto the known levels
func ParseZoneSeverity(s string) ZoneSeverity {
	switch s {
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	default:
		return SeverityLow
	}
}
