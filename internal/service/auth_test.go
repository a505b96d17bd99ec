package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/auth"
	"sitecms/internal/model"
	repoMocks "sitecms/internal/repository/mocks"
)

// resetMailerStub records the reset link instead of sending it.
type resetMailerStub struct {
	to, username, url string
	err               error
}

func (s *resetMailerStub) SendPasswordReset(to, username, resetURL string) error {
	s.to, s.username, s.url = to, username, resetURL
	return s.err
}

func newTestAuth(users *repoMocks.MockUserRepository, mailer *resetMailerStub) AuthService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tokens, mailer, "http://localhost:5173")
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	admin := &model.User{ID: "u-1", Email: "admin@example.com", PasswordHash: hash, Role: model.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "admin@example.com").Return(admin, nil)
		svc := NewAuthService(users, tokens, nil, "")

		session, err := svc.Login(ctx, "admin@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "u-1", session.User.ID)

		claims, err := tokens.Parse(session.Token)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "admin@example.com").Return(admin, nil)
		svc := NewAuthService(users, tokens, nil, "")

		_, err := svc.Login(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)
		svc := NewAuthService(users, tokens, nil, "")

		_, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), tokens, nil, "")

		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores a hash, not the password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "new@example.com").Return(nil, sql.ErrNoRows)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "new@example.com" &&
				u.Role == model.RoleUser &&
				u.PasswordHash != "s3cret-pass" &&
				auth.CheckPassword("s3cret-pass", u.PasswordHash)
		})).Return(&model.User{ID: "u-2", Email: "new@example.com", Role: model.RoleUser}, nil)
		svc := newTestAuth(users, nil)

		user, err := svc.Register(ctx, RegisterInput{Username: "new", Email: "new@example.com", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, "u-2", user.ID)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "taken@example.com").Return(&model.User{ID: "u-1"}, nil)
		svc := newTestAuth(users, nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "x", Email: "taken@example.com", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newTestAuth(new(repoMocks.MockUserRepository), nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("short password", func(t *testing.T) {
		svc := newTestAuth(new(repoMocks.MockUserRepository), nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "x", Email: "a@b.c", Password: "abc"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("old-pass-1")
	require.NoError(t, err)
	user := &model.User{ID: "u-1", Email: "admin@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, "u-1").Return(user, nil)
		users.On("UpdatePassword", ctx, "u-1", mock.MatchedBy(func(h string) bool {
			return auth.CheckPassword("new-pass-1", h)
		})).Return(nil)
		svc := newTestAuth(users, nil)

		require.NoError(t, svc.ChangePassword(ctx, "u-1", "old-pass-1", "new-pass-1"))
		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, "u-1").Return(user, nil)
		svc := newTestAuth(users, nil)

		err := svc.ChangePassword(ctx, "u-1", "not-it", "new-pass-1")
		assert.ErrorIs(t, err, ErrBadCredentials)
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("short new password", func(t *testing.T) {
		svc := newTestAuth(new(repoMocks.MockUserRepository), nil)

		err := svc.ChangePassword(ctx, "u-1", "old-pass-1", "abc")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: "u-1", Email: "admin@example.com", Username: "admin"}

	t.Run("stores hashed token and mails the raw one", func(t *testing.T) {
		var storedHash string
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)
		users.On("SetResetToken", ctx, "u-1", mock.MatchedBy(func(h string) bool {
			storedHash = h
			return len(h) == 64
		}), mock.AnythingOfType("time.Time")).Return(nil)
		mailer := &resetMailerStub{}
		svc := newTestAuth(users, mailer)

		require.NoError(t, svc.ForgotPassword(ctx, "admin@example.com"))

		assert.Equal(t, "admin@example.com", mailer.to)
		require.True(t, strings.HasPrefix(mailer.url, "http://localhost:5173/reset-password/"))
		raw := strings.TrimPrefix(mailer.url, "http://localhost:5173/reset-password/")
		assert.NotEqual(t, raw, storedHash)
		assert.Equal(t, hashResetToken(raw), storedHash)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)
		svc := newTestAuth(users, &resetMailerStub{})

		err := svc.ForgotPassword(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: "u-1", Email: "admin@example.com"}

	t.Run("valid token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByResetTokenHash", ctx, hashResetToken("tok-123")).Return(user, nil)
		users.On("UpdatePassword", ctx, "u-1", mock.MatchedBy(func(h string) bool {
			return auth.CheckPassword("new-pass-1", h)
		})).Return(nil)
		svc := newTestAuth(users, nil)

		require.NoError(t, svc.ResetPassword(ctx, "tok-123", "new-pass-1"))
		users.AssertExpectations(t)
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByResetTokenHash", ctx, mock.Anything).Return(nil, sql.ErrNoRows)
		svc := newTestAuth(users, nil)

		err := svc.ResetPassword(ctx, "stale", "new-pass-1")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("short password", func(t *testing.T) {
		svc := newTestAuth(new(repoMocks.MockUserRepository), nil)

		err := svc.ResetPassword(ctx, "tok", "abc")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestDashboardService_Counts(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDashboardRepository)
	repo.On("Counts", ctx).Return(&model.DashboardCounts{Projects: 4, Inquiries: 2}, nil)
	svc := NewDashboardService(repo)

	counts, err := svc.Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Projects)
	assert.Equal(t, int64(2), counts.Inquiries)
	repo.AssertExpectations(t)
}

func TestSubmissionService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewSubmissionService(new(repoMocks.MockContactRepository), new(repoMocks.MockQuoteRepository), nil)

	_, err := svc.CreateContact(ctx, &model.ContactMessage{Name: "A"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateQuote(ctx, &model.QuoteRequest{Name: "A", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestSubmissionService_CreateContact(t *testing.T) {
	ctx := context.Background()
	contacts := new(repoMocks.MockContactRepository)
	svc := NewSubmissionService(contacts, new(repoMocks.MockQuoteRepository), nil)

	in := &model.ContactMessage{Name: "A", Email: "a@b.c", Message: "hello"}
	contacts.On("Create", ctx, in).Return(&model.ContactMessage{ID: "c-1"}, nil)

	stored, err := svc.CreateContact(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "c-1", stored.ID)
	contacts.AssertExpectations(t)
}
