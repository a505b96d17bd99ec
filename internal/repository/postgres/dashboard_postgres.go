package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// DashboardPostgres is a PostgreSQL implementation of repository.DashboardRepository.
type DashboardPostgres struct {
	db *sql.DB
}

func NewDashboardPostgres(db *sql.DB) *DashboardPostgres {
	return &DashboardPostgres{db: db}
}

var _ repository.DashboardRepository = (*DashboardPostgres)(nil)

// Counts gathers all collection totals in a single round trip.
func (r *DashboardPostgres) Counts(ctx context.Context) (*model.DashboardCounts, error) {
	const q = `SELECT
		(SELECT count(*) FROM projects),
		(SELECT count(*) FROM gallery_entries),
		(SELECT count(*) FROM services),
		(SELECT count(*) FROM team_members),
		(SELECT count(*) FROM testimonials),
		(SELECT count(*) FROM contact_messages)`
	var m model.DashboardCounts
	err := r.db.QueryRowContext(ctx, q).Scan(
		&m.Projects, &m.Gallery, &m.Services, &m.Team, &m.Testimonials, &m.Inquiries)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
