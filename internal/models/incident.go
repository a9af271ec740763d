package models

import "time"

// IncidentStatus represents where a report is in its review lifecycle
type IncidentStatus string

const (
	IncidentPending  IncidentStatus = "pending"
	IncidentResolved IncidentStatus = "resolved"
	IncidentRejected IncidentStatus = "rejected"
)

// Incident represents a user-submitted report of a safety event,
// optionally linked to a danger zone.
type Incident struct {
	ID          string         `json:"id"`
	Tag         string         `json:"tag"`
	Description string         `json:"description"`
	Status      IncidentStatus `json:"status"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	EvidenceURL string         `json:"evidence_url,omitempty"`
	Anonymous   bool           `json:"anonymous"`
	ZoneID      string         `json:"zone_id,omitempty"`
	ReportedAt  time.Time      `json:"reported_at"`
}

// IsOpen reports whether the incident still needs admin attention
func (i *Incident) IsOpen() bool {
	return i.Status == IncidentPending
}
