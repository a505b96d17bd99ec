package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// BlogPostgres is a PostgreSQL implementation of repository.BlogRepository.
type BlogPostgres struct {
	db *sql.DB
}

func NewBlogPostgres(db *sql.DB) *BlogPostgres {
	return &BlogPostgres{db: db}
}

var _ repository.BlogRepository = (*BlogPostgres)(nil)

const blogColumns = `id, title, category, date, snippet, link, image, created_at`

func scanBlogPost(row interface{ Scan(...any) error }) (*model.BlogPost, error) {
	var m model.BlogPost
	if err := row.Scan(&m.ID, &m.Title, &m.Category, &m.Date, &m.Snippet, &m.Link, &m.Image, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *BlogPostgres) Create(ctx context.Context, m *model.BlogPost) (*model.BlogPost, error) {
	const q = `
		INSERT INTO blog_posts (title, category, date, snippet, link, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + blogColumns
	return scanBlogPost(r.db.QueryRowContext(ctx, q, m.Title, m.Category, m.Date, m.Snippet, m.Link, m.Image))
}

func (r *BlogPostgres) List(ctx context.Context) ([]model.BlogPost, error) {
	const q = `SELECT ` + blogColumns + ` FROM blog_posts ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.BlogPost, 0)
	for rows.Next() {
		m, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *BlogPostgres) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	const q = `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`
	return scanBlogPost(r.db.QueryRowContext(ctx, q, id))
}

func (r *BlogPostgres) Update(ctx context.Context, m *model.BlogPost) (*model.BlogPost, error) {
	const q = `
		UPDATE blog_posts
		SET title = $2, category = $3, date = $4, snippet = $5, link = $6, image = $7
		WHERE id = $1
		RETURNING ` + blogColumns
	return scanBlogPost(r.db.QueryRowContext(ctx, q, m.ID, m.Title, m.Category, m.Date, m.Snippet, m.Link, m.Image))
}

func (r *BlogPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM blog_posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
