package models

import "time"

// Role represents a user's position on the platform
type Role string

const (
	RoleStudent        Role = "student"
	RoleCampusSecurity Role = "campus_security"
	RoleAdmin          Role = "admin"
)

// TrustedContact is someone a user nominated to be reached in an
// emergency.
type TrustedContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// User represents an account in the campus directory
type User struct {
	ID              string           `json:"id"`
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	Role            Role             `json:"role"`
	StudentID       string           `json:"student_id,omitempty"`
	TrustedContacts []TrustedContact `json:"trusted_contacts,omitempty"`
	HasDeviceToken  bool             `json:"has_device_token"`
	JoinedAt        time.Time        `json:"joined_at"`
}
