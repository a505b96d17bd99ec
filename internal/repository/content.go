package repository

import (
	"context"
	"time"

	"sitecms/internal/model"
)

// Package repository contains data access interfaces for the content records.
// Implementations live in subpackages (postgres) and contain SQL only — no
// business logic, and in particular no file handling: image retention is the
// service layer's job.

// TeamRepository persists team members.
type TeamRepository interface {
	Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	List(ctx context.Context) ([]model.TeamMember, error)
	FindByID(ctx context.Context, id string) (*model.TeamMember, error)
	Update(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// TestimonialRepository persists testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, m *model.Testimonial) (*model.Testimonial, error)
	List(ctx context.Context) ([]model.Testimonial, error)
	FindByID(ctx context.Context, id string) (*model.Testimonial, error)
	Update(ctx context.Context, m *model.Testimonial) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

// ServiceRepository persists service offerings.
type ServiceRepository interface {
	Create(ctx context.Context, m *model.Service) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	FindByID(ctx context.Context, id string) (*model.Service, error)
	Update(ctx context.Context, m *model.Service) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, m *model.Project) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListFirstN(ctx context.Context, n int) ([]model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, m *model.Project) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

// GalleryRepository persists before/after gallery entries.
type GalleryRepository interface {
	Create(ctx context.Context, m *model.GalleryEntry) (*model.GalleryEntry, error)
	List(ctx context.Context) ([]model.GalleryEntry, error)
	FindByID(ctx context.Context, id string) (*model.GalleryEntry, error)
	Update(ctx context.Context, m *model.GalleryEntry) (*model.GalleryEntry, error)
	Delete(ctx context.Context, id string) error
}

// BlogRepository persists blog posts.
type BlogRepository interface {
	Create(ctx context.Context, m *model.BlogPost) (*model.BlogPost, error)
	List(ctx context.Context) ([]model.BlogPost, error)
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	Update(ctx context.Context, m *model.BlogPost) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// ContactRepository persists contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
}

// QuoteRepository persists quote-form submissions.
type QuoteRepository interface {
	Create(ctx context.Context, m *model.QuoteRequest) (*model.QuoteRequest, error)
	List(ctx context.Context) ([]model.QuoteRequest, error)
}

// UserRepository persists admin-console accounts. Reset tokens are stored
// hashed; the raw token only ever travels in the reset email.
type UserRepository interface {
	Create(ctx context.Context, m *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, m *model.User) (*model.User, error)
	// UpdatePassword stores a new password hash and clears any pending
	// reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	// FindByResetTokenHash matches only unexpired tokens.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.User, error)
}

// DashboardRepository aggregates record counts for the admin dashboard.
type DashboardRepository interface {
	Counts(ctx context.Context) (*model.DashboardCounts, error)
}
