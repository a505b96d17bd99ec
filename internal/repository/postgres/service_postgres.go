package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ServicePostgres is a PostgreSQL implementation of repository.ServiceRepository.
type ServicePostgres struct {
	db *sql.DB
}

func NewServicePostgres(db *sql.DB) *ServicePostgres {
	return &ServicePostgres{db: db}
}

var _ repository.ServiceRepository = (*ServicePostgres)(nil)

const serviceColumns = `id, title, description, image, image_position, highlight, jobs, featured, created_at`

func scanService(row interface{ Scan(...any) error }) (*model.Service, error) {
	var m model.Service
	var jobs []byte
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.ImagePosition, &m.Highlight, &jobs, &m.Featured, &m.CreatedAt); err != nil {
		return nil, err
	}
	if err := scanJSONB(jobs, &m.Jobs); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ServicePostgres) Create(ctx context.Context, m *model.Service) (*model.Service, error) {
	jobs, err := jsonb(m.Jobs)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO services (title, description, image, image_position, highlight, jobs, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + serviceColumns
	return scanService(r.db.QueryRowContext(ctx, q, m.Title, m.Description, m.Image, m.ImagePosition, m.Highlight, jobs, m.Featured))
}

func (r *ServicePostgres) List(ctx context.Context) ([]model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Service, 0)
	for rows.Next() {
		m, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *ServicePostgres) FindByID(ctx context.Context, id string) (*model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.db.QueryRowContext(ctx, q, id))
}

func (r *ServicePostgres) Update(ctx context.Context, m *model.Service) (*model.Service, error) {
	jobs, err := jsonb(m.Jobs)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE services
		SET title = $2, description = $3, image = $4, image_position = $5, highlight = $6, jobs = $7, featured = $8
		WHERE id = $1
		RETURNING ` + serviceColumns
	return scanService(r.db.QueryRowContext(ctx, q, m.ID, m.Title, m.Description, m.Image, m.ImagePosition, m.Highlight, jobs, m.Featured))
}

func (r *ServicePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM services WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
