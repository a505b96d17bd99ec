package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// maxDirtyImages caps the "before" bucket on one gallery entry.
const maxDirtyImages = 20

// GalleryService defines the use cases for before/after gallery entries.
// Create requires the "clean" image; "dirty" may be empty. On update each
// bucket that receives new files is replaced wholesale.
type GalleryService interface {
	Create(ctx context.Context, form *multipart.Form) (*model.GalleryEntry, error)
	List(ctx context.Context) ([]model.GalleryEntry, error)
	Get(ctx context.Context, id string) (*model.GalleryEntry, error)
	Update(ctx context.Context, id string, form *multipart.Form) (*model.GalleryEntry, error)
	Delete(ctx context.Context, id string) error
}

type galleryService struct {
	repo      repository.GalleryRepository
	pipeline  *media.Pipeline
	retention *media.Retention
}

// NewGalleryService constructs a GalleryService.
func NewGalleryService(repo repository.GalleryRepository, pipeline *media.Pipeline, retention *media.Retention) GalleryService {
	return &galleryService{repo: repo, pipeline: pipeline, retention: retention}
}

func (s *galleryService) Create(ctx context.Context, form *multipart.Form) (*model.GalleryEntry, error) {
	res, err := s.pipeline.Process(ctx, form, media.KindGallery,
		media.Single("clean"), media.UpTo("dirty", maxDirtyImages))
	if err != nil {
		return nil, err
	}

	entry := &model.GalleryEntry{
		Clean: res.Ref("clean"),
		Dirty: res.Refs("dirty"),
	}
	stored, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.retention.Release(ctx, media.KindGallery, append([]string{entry.Clean}, entry.Dirty...)...)
		return nil, fmt.Errorf("create gallery entry: %w", err)
	}
	return stored, nil
}

func (s *galleryService) List(ctx context.Context) ([]model.GalleryEntry, error) {
	return s.repo.List(ctx)
}

func (s *galleryService) Get(ctx context.Context, id string) (*model.GalleryEntry, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return entry, nil
}

func (s *galleryService) Update(ctx context.Context, id string, form *multipart.Form) (*model.GalleryEntry, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, form, media.KindGallery,
		media.Optional("clean"), media.UpTo("dirty", maxDirtyImages))
	if err != nil {
		return nil, err
	}

	entry := &model.GalleryEntry{
		ID:    existing.ID,
		Clean: existing.Clean,
		Dirty: existing.Dirty,
	}
	if res.Has("clean") {
		entry.Clean = res.Ref("clean")
	}
	if res.Has("dirty") {
		entry.Dirty = res.Refs("dirty")
	}

	stored, err := s.repo.Update(ctx, entry)
	if err != nil {
		var fresh []string
		if res.Has("clean") {
			fresh = append(fresh, res.Ref("clean"))
		}
		fresh = append(fresh, res.Refs("dirty")...)
		s.retention.Release(ctx, media.KindGallery, fresh...)
		return nil, fmt.Errorf("update gallery entry: %w", err)
	}

	var stale []string
	if res.Has("clean") && existing.Clean != "" {
		stale = append(stale, existing.Clean)
	}
	if res.Has("dirty") {
		stale = append(stale, existing.Dirty...)
	}
	s.retention.Release(ctx, media.KindGallery, stale...)
	return stored, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gallery entry: %w", err)
	}
	// Both buckets go: the clean image and every dirty image.
	s.retention.Release(ctx, media.KindGallery, append([]string{existing.Clean}, existing.Dirty...)...)
	return nil
}
