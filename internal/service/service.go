package service

import (
	"database/sql"
	"errors"
)

// Shared sentinels across the content services. Handlers map these to HTTP
// status codes.
var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("record not found")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrEmailTaken        = errors.New("email already in use")
	ErrWeakPassword      = errors.New("password must be at least 6 characters")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// notFound translates the repository's no-rows error to the service sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
