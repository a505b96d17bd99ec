package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// OfferingInput carries the text fields of a service offering.
type OfferingInput struct {
	Title         string
	Description   string
	ImagePosition string
	Highlight     string
	Jobs          []string
	Featured      bool
}

// OfferingService defines the use cases for the published service offerings.
// The illustration image is optional.
type OfferingService interface {
	Create(ctx context.Context, in OfferingInput, form *multipart.Form) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	Get(ctx context.Context, id string) (*model.Service, error)
	Update(ctx context.Context, id string, in OfferingInput, form *multipart.Form) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

type offeringService struct {
	repo      repository.ServiceRepository
	pipeline  *media.Pipeline
	retention *media.Retention
}

// NewOfferingService constructs an OfferingService.
func NewOfferingService(repo repository.ServiceRepository, pipeline *media.Pipeline, retention *media.Retention) OfferingService {
	return &offeringService{repo: repo, pipeline: pipeline, retention: retention}
}

func (s *offeringService) Create(ctx context.Context, in OfferingInput, form *multipart.Form) (*model.Service, error) {
	res, err := s.pipeline.Process(ctx, form, media.KindServices, media.Optional("image"))
	if err != nil {
		return nil, err
	}

	svc := &model.Service{
		Title:         in.Title,
		Description:   in.Description,
		Image:         res.Ref("image"),
		ImagePosition: in.ImagePosition,
		Highlight:     in.Highlight,
		Jobs:          in.Jobs,
		Featured:      in.Featured,
	}
	stored, err := s.repo.Create(ctx, svc)
	if err != nil {
		if res.Has("image") {
			s.retention.Release(ctx, media.KindServices, svc.Image)
		}
		return nil, fmt.Errorf("create service: %w", err)
	}
	return stored, nil
}

func (s *offeringService) List(ctx context.Context) ([]model.Service, error) {
	return s.repo.List(ctx)
}

func (s *offeringService) Get(ctx context.Context, id string) (*model.Service, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return svc, nil
}

func (s *offeringService) Update(ctx context.Context, id string, in OfferingInput, form *multipart.Form) (*model.Service, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, form, media.KindServices, media.Optional("image"))
	if err != nil {
		return nil, err
	}

	svc := &model.Service{
		ID:            existing.ID,
		Title:         in.Title,
		Description:   in.Description,
		Image:         existing.Image,
		ImagePosition: in.ImagePosition,
		Highlight:     in.Highlight,
		Jobs:          in.Jobs,
		Featured:      in.Featured,
	}
	if res.Has("image") {
		svc.Image = res.Ref("image")
	}

	stored, err := s.repo.Update(ctx, svc)
	if err != nil {
		if res.Has("image") {
			s.retention.Release(ctx, media.KindServices, res.Ref("image"))
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	if res.Has("image") && existing.Image != "" {
		s.retention.Release(ctx, media.KindServices, existing.Image)
	}
	return stored, nil
}

func (s *offeringService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if existing.Image != "" {
		s.retention.Release(ctx, media.KindServices, existing.Image)
	}
	return nil
}
