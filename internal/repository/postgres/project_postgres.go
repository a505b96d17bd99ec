package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	db *sql.DB
}

func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, title, category, description, image, details, featured, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	var m model.Project
	var details []byte
	if err := row.Scan(&m.ID, &m.Title, &m.Category, &m.Description, &m.Image, &details, &m.Featured, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if err := scanJSONB(details, &m.Details); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ProjectPostgres) Create(ctx context.Context, m *model.Project) (*model.Project, error) {
	details, err := jsonb(m.Details)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO projects (title, category, description, image, details, featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, q, m.Title, m.Category, m.Description, m.Image, details, m.Featured))
}

func (r *ProjectPostgres) List(ctx context.Context) ([]model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	return r.queryProjects(ctx, q)
}

// ListFirstN returns the n most recent projects for the landing page strip.
func (r *ProjectPostgres) ListFirstN(ctx context.Context, n int) ([]model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.queryProjects(ctx, q, n)
}

func (r *ProjectPostgres) queryProjects(ctx context.Context, q string, args ...any) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *ProjectPostgres) FindByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, q, id))
}

func (r *ProjectPostgres) Update(ctx context.Context, m *model.Project) (*model.Project, error) {
	details, err := jsonb(m.Details)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE projects
		SET title = $2, category = $3, description = $4, image = $5, details = $6, featured = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, q, m.ID, m.Title, m.Category, m.Description, m.Image, details, m.Featured))
}

func (r *ProjectPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
