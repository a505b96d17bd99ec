package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// TestimonialPostgres is a PostgreSQL implementation of repository.TestimonialRepository.
type TestimonialPostgres struct {
	db *sql.DB
}

func NewTestimonialPostgres(db *sql.DB) *TestimonialPostgres {
	return &TestimonialPostgres{db: db}
}

var _ repository.TestimonialRepository = (*TestimonialPostgres)(nil)

const testimonialColumns = `id, name, role, message, image, created_at`

func scanTestimonial(row interface{ Scan(...any) error }) (*model.Testimonial, error) {
	var m model.Testimonial
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Message, &m.Image, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TestimonialPostgres) Create(ctx context.Context, m *model.Testimonial) (*model.Testimonial, error) {
	const q = `
		INSERT INTO testimonials (name, role, message, image)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.db.QueryRowContext(ctx, q, m.Name, m.Role, m.Message, m.Image))
}

func (r *TestimonialPostgres) List(ctx context.Context) ([]model.Testimonial, error) {
	const q = `SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Testimonial, 0)
	for rows.Next() {
		m, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *TestimonialPostgres) FindByID(ctx context.Context, id string) (*model.Testimonial, error) {
	const q = `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`
	return scanTestimonial(r.db.QueryRowContext(ctx, q, id))
}

func (r *TestimonialPostgres) Update(ctx context.Context, m *model.Testimonial) (*model.Testimonial, error) {
	const q = `
		UPDATE testimonials
		SET name = $2, role = $3, message = $4, image = $5
		WHERE id = $1
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.db.QueryRowContext(ctx, q, m.ID, m.Name, m.Role, m.Message, m.Image))
}

func (r *TestimonialPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM testimonials WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
