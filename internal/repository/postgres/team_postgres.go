package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// TeamPostgres is a PostgreSQL implementation of repository.TeamRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type TeamPostgres struct {
	db *sql.DB
}

// NewTeamPostgres creates a new TeamPostgres repository.
func NewTeamPostgres(db *sql.DB) *TeamPostgres {
	return &TeamPostgres{db: db}
}

var _ repository.TeamRepository = (*TeamPostgres)(nil)

const teamColumns = `id, name, role, image, social_links, created_at, updated_at`

func scanTeamMember(row interface{ Scan(...any) error }) (*model.TeamMember, error) {
	var m model.TeamMember
	var links []byte
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Image, &links, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if err := scanJSONB(links, &m.SocialLinks); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamPostgres) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	links, err := jsonb(m.SocialLinks)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO team_members (name, role, image, social_links)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + teamColumns
	return scanTeamMember(r.db.QueryRowContext(ctx, q, m.Name, m.Role, m.Image, links))
}

func (r *TeamPostgres) List(ctx context.Context) ([]model.TeamMember, error) {
	const q = `SELECT ` + teamColumns + ` FROM team_members ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *TeamPostgres) FindByID(ctx context.Context, id string) (*model.TeamMember, error) {
	const q = `SELECT ` + teamColumns + ` FROM team_members WHERE id = $1`
	return scanTeamMember(r.db.QueryRowContext(ctx, q, id))
}

func (r *TeamPostgres) Update(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	links, err := jsonb(m.SocialLinks)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE team_members
		SET name = $2, role = $3, image = $4, social_links = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + teamColumns
	return scanTeamMember(r.db.QueryRowContext(ctx, q, m.ID, m.Name, m.Role, m.Image, links))
}

// Delete removes a team member by ID. It does not return an error if the row
// does not exist.
func (r *TeamPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM team_members WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
