package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"sitecms/internal/auth"
	"sitecms/internal/email"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

const (
	minPasswordLen = 6
	resetTokenTTL  = time.Hour
)

// Session is the result of a successful login.
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// RegisterInput are the fields accepted on account registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// ProfileInput are the fields an authenticated user may change on their
// own account. Empty fields are left untouched.
type ProfileInput struct {
	Username string
	Email    string
	FullName string
	Phone    string
}

// AuthService manages admin-console accounts and sessions.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error)
	ChangePassword(ctx context.Context, userID, current, updated string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	users        repository.UserRepository
	tokens       *auth.TokenManager
	mailer       email.PasswordMailer
	resetBaseURL string
}

// NewAuthService constructs an AuthService. resetBaseURL is the admin
// console origin the emailed reset link points at.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, mailer email.PasswordMailer, resetBaseURL string) AuthService {
	return &authService{
		users:        users,
		tokens:       tokens,
		mailer:       mailer,
		resetBaseURL: strings.TrimSuffix(resetBaseURL, "/"),
	}
}

// Register creates an account. The first account on a fresh install is
// created through this path; the role defaults to the non-admin one.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	return s.users.Create(ctx, &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
}

// Login verifies the credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the authenticated user's own account.
func (s *authService) Profile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// UpdateProfile applies the non-empty input fields to the account. A
// changed email must not collide with another account.
func (s *authService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != "" && in.Email != user.Email {
		if other, err := s.users.FindByEmail(ctx, in.Email); err == nil && other.ID != user.ID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	return s.users.UpdateProfile(ctx, user)
}

// ChangePassword replaces the password after verifying the current one.
func (s *authService) ChangePassword(ctx context.Context, userID, current, updated string) error {
	if current == "" || updated == "" {
		return ErrMissingFields
	}
	if len(updated) < minPasswordLen {
		return ErrWeakPassword
	}
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(current, user.PasswordHash) {
		return ErrBadCredentials
	}
	hash, err := auth.HashPassword(updated)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// ForgotPassword stores a hashed single-use token and emails the raw one
// as a reset link. The raw token is never persisted.
func (s *authService) ForgotPassword(ctx context.Context, addr string) error {
	if addr == "" {
		return ErrMissingFields
	}
	user, err := s.users.FindByEmail(ctx, addr)
	if err != nil {
		return notFound(err)
	}
	if s.mailer == nil {
		return errors.New("mail delivery is not configured")
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	if err := s.users.SetResetToken(ctx, user.ID, hashResetToken(token), time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(user.Email, user.Username, s.resetBaseURL+"/reset-password/"+token)
}

// ResetPassword consumes an emailed token and sets a new password.
func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	user, err := s.users.FindByResetTokenHash(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
