package postgres

import (
	"context"
	"database/sql"
	"time"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, username, full_name, phone, password_hash, role, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	var m model.User
	err := row.Scan(&m.ID, &m.Email, &m.Username, &m.FullName, &m.Phone, &m.PasswordHash, &m.Role, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *UserPostgres) Create(ctx context.Context, m *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (email, username, full_name, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, m.Email, m.Username, m.FullName, m.Phone, m.PasswordHash, m.Role))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) UpdateProfile(ctx context.Context, m *model.User) (*model.User, error) {
	const q = `
		UPDATE users
		SET email = $2, username = $3, full_name = $4, phone = $5
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, m.ID, m.Email, m.Username, m.FullName, m.Phone))
}

func (r *UserPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expires = NULL
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserPostgres) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	const q = `UPDATE users SET reset_token_hash = $2, reset_token_expires = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, tokenHash, expires)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserPostgres) FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires > now()`
	return scanUser(r.db.QueryRowContext(ctx, q, tokenHash))
}
