package model

import "time"

// Package model contains the content records served by the marketing site.
// These are pure domain models with no database-specific dependencies or tags;
// image fields hold stored image references (paths relative to the storage
// root, e.g. "/uploads/team/1712345678901-9f3ab2c1.webp").

// SocialLinks groups the optional social profile URLs on a team member.
type SocialLinks struct {
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
}

// TeamMember is a single-slot image record: one portrait per member.
type TeamMember struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	Image       string      `json:"image"`
	SocialLinks SocialLinks `json:"socialLinks"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Testimonial is a customer quote with an optional portrait.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// Service is a published service offering on the public site.
type Service struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	ImagePosition string    `json:"imagePosition"`
	Highlight     string    `json:"highlight"`
	Jobs          []string  `json:"jobs"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProjectDetails carries the optional metadata block on a project,
// including its secondary image gallery.
type ProjectDetails struct {
	Client   string   `json:"client,omitempty"`
	Location string   `json:"location,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Size     string   `json:"size,omitempty"`
	Services []string `json:"services,omitempty"`
	Gallery  []string `json:"gallery,omitempty"`
}

// Project carries a required cover image plus an optional gallery array
// inside Details (multi-slot).
type Project struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Details     ProjectDetails `json:"details"`
	Featured    bool           `json:"featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProjectCategories are the accepted values for Project.Category.
var ProjectCategories = []string{"residential", "commercial", "industrial", "construction", "other"}

// GalleryEntry is the dual-bucket record: one "clean" (after) image and a
// list of "dirty" (before) images. Each bucket is replaced wholesale on update.
type GalleryEntry struct {
	ID        string    `json:"id"`
	Clean     string    `json:"clean"`
	Dirty     []string  `json:"dirty"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogPost is an external-link blog teaser with a cover image.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Snippet   string    `json:"snippet"`
	Link      string    `json:"link"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
