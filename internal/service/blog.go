package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// BlogInput carries the text fields of a blog teaser.
type BlogInput struct {
	Title    string
	Category string
	Date     time.Time
	Snippet  string
	Link     string
}

// BlogService defines the use cases for blog teasers. Each teaser carries a
// required cover image.
type BlogService interface {
	Create(ctx context.Context, in BlogInput, form *multipart.Form) (*model.BlogPost, error)
	List(ctx context.Context) ([]model.BlogPost, error)
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	Update(ctx context.Context, id string, in BlogInput, form *multipart.Form) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type blogService struct {
	repo      repository.BlogRepository
	pipeline  *media.Pipeline
	retention *media.Retention
}

// NewBlogService constructs a BlogService.
func NewBlogService(repo repository.BlogRepository, pipeline *media.Pipeline, retention *media.Retention) BlogService {
	return &blogService{repo: repo, pipeline: pipeline, retention: retention}
}

func (s *blogService) Create(ctx context.Context, in BlogInput, form *multipart.Form) (*model.BlogPost, error) {
	res, err := s.pipeline.Process(ctx, form, media.KindBlogs, media.Single("image"))
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	p := &model.BlogPost{
		Title:    in.Title,
		Category: in.Category,
		Date:     date,
		Snippet:  in.Snippet,
		Link:     in.Link,
		Image:    res.Ref("image"),
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		s.retention.Release(ctx, media.KindBlogs, p.Image)
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return stored, nil
}

func (s *blogService) List(ctx context.Context) ([]model.BlogPost, error) {
	return s.repo.List(ctx)
}

func (s *blogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *blogService) Update(ctx context.Context, id string, in BlogInput, form *multipart.Form) (*model.BlogPost, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, form, media.KindBlogs, media.Optional("image"))
	if err != nil {
		return nil, err
	}

	p := &model.BlogPost{
		ID:       existing.ID,
		Title:    in.Title,
		Category: in.Category,
		Date:     existing.Date,
		Snippet:  in.Snippet,
		Link:     in.Link,
		Image:    existing.Image,
	}
	if !in.Date.IsZero() {
		p.Date = in.Date
	}
	if res.Has("image") {
		p.Image = res.Ref("image")
	}

	stored, err := s.repo.Update(ctx, p)
	if err != nil {
		if res.Has("image") {
			s.retention.Release(ctx, media.KindBlogs, res.Ref("image"))
		}
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	if res.Has("image") && existing.Image != "" {
		s.retention.Release(ctx, media.KindBlogs, existing.Image)
	}
	return stored, nil
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	s.retention.Release(ctx, media.KindBlogs, existing.Image)
	return nil
}
