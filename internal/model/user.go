package model

import "time"

// User is an admin-console account. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleAdmin is the role required for all mutating content operations.
const RoleAdmin = "admin"

// RoleUser is the default role assigned on registration.
const RoleUser = "user"

// DashboardCounts are the per-collection record totals shown on the admin
// dashboard.
type DashboardCounts struct {
	Projects     int64 `json:"projects"`
	Gallery      int64 `json:"gallery"`
	Services     int64 `json:"services"`
	Team         int64 `json:"team"`
	Testimonials int64 `json:"testimonials"`
	Inquiries    int64 `json:"inquiries"`
}
