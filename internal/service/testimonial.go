package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// TestimonialInput carries the text fields of a testimonial.
type TestimonialInput struct {
	Name    string
	Role    string
	Message string
}

// TestimonialService defines the use cases for testimonials. The portrait is
// optional.
type TestimonialService interface {
	Create(ctx context.Context, in TestimonialInput, form *multipart.Form) (*model.Testimonial, error)
	List(ctx context.Context) ([]model.Testimonial, error)
	Get(ctx context.Context, id string) (*model.Testimonial, error)
	Update(ctx context.Context, id string, in TestimonialInput, form *multipart.Form) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type testimonialService struct {
	repo      repository.TestimonialRepository
	pipeline  *media.Pipeline
	retention *media.Retention
}

// NewTestimonialService constructs a TestimonialService.
func NewTestimonialService(repo repository.TestimonialRepository, pipeline *media.Pipeline, retention *media.Retention) TestimonialService {
	return &testimonialService{repo: repo, pipeline: pipeline, retention: retention}
}

func (s *testimonialService) Create(ctx context.Context, in TestimonialInput, form *multipart.Form) (*model.Testimonial, error) {
	res, err := s.pipeline.Process(ctx, form, media.KindTestimonials, media.Optional("image"))
	if err != nil {
		return nil, err
	}

	t := &model.Testimonial{
		Name:    in.Name,
		Role:    in.Role,
		Message: in.Message,
		Image:   res.Ref("image"),
	}
	stored, err := s.repo.Create(ctx, t)
	if err != nil {
		if res.Has("image") {
			s.retention.Release(ctx, media.KindTestimonials, t.Image)
		}
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return stored, nil
}

func (s *testimonialService) List(ctx context.Context) ([]model.Testimonial, error) {
	return s.repo.List(ctx)
}

func (s *testimonialService) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *testimonialService) Update(ctx context.Context, id string, in TestimonialInput, form *multipart.Form) (*model.Testimonial, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, form, media.KindTestimonials, media.Optional("image"))
	if err != nil {
		return nil, err
	}

	t := &model.Testimonial{
		ID:      existing.ID,
		Name:    in.Name,
		Role:    in.Role,
		Message: in.Message,
		Image:   existing.Image,
	}
	if res.Has("image") {
		t.Image = res.Ref("image")
	}

	stored, err := s.repo.Update(ctx, t)
	if err != nil {
		if res.Has("image") {
			s.retention.Release(ctx, media.KindTestimonials, res.Ref("image"))
		}
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	if res.Has("image") && existing.Image != "" {
		s.retention.Release(ctx, media.KindTestimonials, existing.Image)
	}
	return stored, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if existing.Image != "" {
		s.retention.Release(ctx, media.KindTestimonials, existing.Image)
	}
	return nil
}
