package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// maxProjectGallery caps the secondary image gallery on one project.
const maxProjectGallery = 10

// ProjectInput carries the text fields of a project.
type ProjectInput struct {
	Title       string
	Category    string
	Description string
	Details     model.ProjectDetails // Gallery is managed by the service, not the caller
	Featured    bool
}

// ProjectService defines the use cases for projects. Each project has a
// required cover image ("image") and an optional secondary gallery ("images").
// A new gallery upload replaces the previous gallery wholesale.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput, form *multipart.Form) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListFirstN(ctx context.Context, n int) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, id string, in ProjectInput, form *multipart.Form) (*model.Project, error)
	ToggleFeatured(ctx context.Context, id string) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo      repository.ProjectRepository
	pipeline  *media.Pipeline
	retention *media.Retention
}

// NewProjectService constructs a ProjectService.
func NewProjectService(repo repository.ProjectRepository, pipeline *media.Pipeline, retention *media.Retention) ProjectService {
	return &projectService{repo: repo, pipeline: pipeline, retention: retention}
}

func validCategory(c string) bool {
	for _, v := range model.ProjectCategories {
		if c == v {
			return true
		}
	}
	return false
}

func (s *projectService) Create(ctx context.Context, in ProjectInput, form *multipart.Form) (*model.Project, error) {
	if !validCategory(in.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}

	res, err := s.pipeline.Process(ctx, form, media.KindProjects,
		media.Single("image"), media.UpTo("images", maxProjectGallery))
	if err != nil {
		return nil, err
	}

	details := in.Details
	details.Gallery = res.Refs("images")

	p := &model.Project{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Image:       res.Ref("image"),
		Details:     details,
		Featured:    in.Featured,
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		s.retention.Release(ctx, media.KindProjects, append([]string{p.Image}, details.Gallery...)...)
		return nil, fmt.Errorf("create project: %w", err)
	}
	return stored, nil
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.List(ctx)
}

func (s *projectService) ListFirstN(ctx context.Context, n int) ([]model.Project, error) {
	if n <= 0 {
		n = 6
	}
	return s.repo.ListFirstN(ctx, n)
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id string, in ProjectInput, form *multipart.Form) (*model.Project, error) {
	if !validCategory(in.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, form, media.KindProjects,
		media.Optional("image"), media.UpTo("images", maxProjectGallery))
	if err != nil {
		return nil, err
	}

	details := in.Details
	details.Gallery = existing.Details.Gallery
	if res.Has("images") {
		details.Gallery = res.Refs("images")
	}

	p := &model.Project{
		ID:          existing.ID,
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Image:       existing.Image,
		Details:     details,
		Featured:    in.Featured,
	}
	if res.Has("image") {
		p.Image = res.Ref("image")
	}

	stored, err := s.repo.Update(ctx, p)
	if err != nil {
		var fresh []string
		if res.Has("image") {
			fresh = append(fresh, res.Ref("image"))
		}
		fresh = append(fresh, res.Refs("images")...)
		s.retention.Release(ctx, media.KindProjects, fresh...)
		return nil, fmt.Errorf("update project: %w", err)
	}

	// Release superseded files only after the record persisted.
	var stale []string
	if res.Has("image") && existing.Image != "" {
		stale = append(stale, existing.Image)
	}
	if res.Has("images") {
		stale = append(stale, existing.Details.Gallery...)
	}
	s.retention.Release(ctx, media.KindProjects, stale...)
	return stored, nil
}

func (s *projectService) ToggleFeatured(ctx context.Context, id string) (*model.Project, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Featured = !existing.Featured
	stored, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("toggle featured: %w", err)
	}
	return stored, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.retention.Release(ctx, media.KindProjects, append([]string{existing.Image}, existing.Details.Gallery...)...)
	return nil
}
