package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// GalleryPostgres is a PostgreSQL implementation of repository.GalleryRepository.
type GalleryPostgres struct {
	db *sql.DB
}

func NewGalleryPostgres(db *sql.DB) *GalleryPostgres {
	return &GalleryPostgres{db: db}
}

var _ repository.GalleryRepository = (*GalleryPostgres)(nil)

const galleryColumns = `id, clean, dirty, created_at`

func scanGalleryEntry(row interface{ Scan(...any) error }) (*model.GalleryEntry, error) {
	var m model.GalleryEntry
	var dirty []byte
	if err := row.Scan(&m.ID, &m.Clean, &dirty, &m.CreatedAt); err != nil {
		return nil, err
	}
	if err := scanJSONB(dirty, &m.Dirty); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GalleryPostgres) Create(ctx context.Context, m *model.GalleryEntry) (*model.GalleryEntry, error) {
	dirty, err := jsonb(m.Dirty)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO gallery_entries (clean, dirty)
		VALUES ($1, $2)
		RETURNING ` + galleryColumns
	return scanGalleryEntry(r.db.QueryRowContext(ctx, q, m.Clean, dirty))
}

func (r *GalleryPostgres) List(ctx context.Context) ([]model.GalleryEntry, error) {
	const q = `SELECT ` + galleryColumns + ` FROM gallery_entries ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.GalleryEntry, 0)
	for rows.Next() {
		m, err := scanGalleryEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *GalleryPostgres) FindByID(ctx context.Context, id string) (*model.GalleryEntry, error) {
	const q = `SELECT ` + galleryColumns + ` FROM gallery_entries WHERE id = $1`
	return scanGalleryEntry(r.db.QueryRowContext(ctx, q, id))
}

func (r *GalleryPostgres) Update(ctx context.Context, m *model.GalleryEntry) (*model.GalleryEntry, error) {
	dirty, err := jsonb(m.Dirty)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE gallery_entries
		SET clean = $2, dirty = $3
		WHERE id = $1
		RETURNING ` + galleryColumns
	return scanGalleryEntry(r.db.QueryRowContext(ctx, q, m.ID, m.Clean, dirty))
}

func (r *GalleryPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM gallery_entries WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
