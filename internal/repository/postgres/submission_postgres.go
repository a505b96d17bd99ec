package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ContactPostgres is a PostgreSQL implementation of repository.ContactRepository.
type ContactPostgres struct {
	db *sql.DB
}

func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

const contactColumns = `id, name, email, phone, service, message, created_at`

func scanContactMessage(row interface{ Scan(...any) error }) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Service, &m.Message, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContactPostgres) Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (name, email, phone, service, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns
	return scanContactMessage(r.db.QueryRowContext(ctx, q, m.Name, m.Email, m.Phone, m.Service, m.Message))
}

func (r *ContactPostgres) List(ctx context.Context) ([]model.ContactMessage, error) {
	const q = `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// QuotePostgres is a PostgreSQL implementation of repository.QuoteRepository.
type QuotePostgres struct {
	db *sql.DB
}

func NewQuotePostgres(db *sql.DB) *QuotePostgres {
	return &QuotePostgres{db: db}
}

var _ repository.QuoteRepository = (*QuotePostgres)(nil)

const quoteColumns = `id, name, email, phone, property_type, num_rooms, cleaning_frequency, preferred_date, service, message, special_instructions, created_at`

func scanQuoteRequest(row interface{ Scan(...any) error }) (*model.QuoteRequest, error) {
	var m model.QuoteRequest
	if err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.PropertyType, &m.NumRooms,
		&m.CleaningFrequency, &m.PreferredDate, &m.Service, &m.Message,
		&m.SpecialInstructions, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *QuotePostgres) Create(ctx context.Context, m *model.QuoteRequest) (*model.QuoteRequest, error) {
	const q = `
		INSERT INTO quote_requests (name, email, phone, property_type, num_rooms, cleaning_frequency, preferred_date, service, message, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + quoteColumns
	return scanQuoteRequest(r.db.QueryRowContext(ctx, q,
		m.Name, m.Email, m.Phone, m.PropertyType, m.NumRooms,
		m.CleaningFrequency, m.PreferredDate, m.Service, m.Message, m.SpecialInstructions,
	))
}

func (r *QuotePostgres) List(ctx context.Context) ([]model.QuoteRequest, error) {
	const q = `SELECT ` + quoteColumns + ` FROM quote_requests ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.QuoteRequest, 0)
	for rows.Next() {
		m, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
