package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// TeamInput carries the text fields of a team member create or update.
type TeamInput struct {
	Name        string
	Role        string
	SocialLinks model.SocialLinks
}

// TeamService defines the use cases for team members. Each member carries a
// single required portrait image.
type TeamService interface {
	Create(ctx context.Context, in TeamInput, form *multipart.Form) (*model.TeamMember, error)
	List(ctx context.Context) ([]model.TeamMember, error)
	Get(ctx context.Context, id string) (*model.TeamMember, error)
	Update(ctx context.Context, id string, in TeamInput, form *multipart.Form) (*model.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type teamService struct {
	repo      repository.TeamRepository
	pipeline  *media.Pipeline
	retention *media.Retention
}

// NewTeamService constructs a TeamService.
func NewTeamService(repo repository.TeamRepository, pipeline *media.Pipeline, retention *media.Retention) TeamService {
	return &teamService{repo: repo, pipeline: pipeline, retention: retention}
}

func (s *teamService) Create(ctx context.Context, in TeamInput, form *multipart.Form) (*model.TeamMember, error) {
	res, err := s.pipeline.Process(ctx, form, media.KindTeam, media.Single("image"))
	if err != nil {
		return nil, err
	}

	member := &model.TeamMember{
		Name:        in.Name,
		Role:        in.Role,
		Image:       res.Ref("image"),
		SocialLinks: in.SocialLinks,
	}
	stored, err := s.repo.Create(ctx, member)
	if err != nil {
		// Roll back the file so a failed insert leaves no orphan behind.
		s.retention.Release(ctx, media.KindTeam, member.Image)
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return stored, nil
}

func (s *teamService) List(ctx context.Context) ([]model.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *teamService) Get(ctx context.Context, id string) (*model.TeamMember, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return member, nil
}

func (s *teamService) Update(ctx context.Context, id string, in TeamInput, form *multipart.Form) (*model.TeamMember, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, form, media.KindTeam, media.Optional("image"))
	if err != nil {
		return nil, err
	}

	member := &model.TeamMember{
		ID:          existing.ID,
		Name:        in.Name,
		Role:        in.Role,
		Image:       existing.Image,
		SocialLinks: in.SocialLinks,
	}
	if res.Has("image") {
		member.Image = res.Ref("image")
	}

	stored, err := s.repo.Update(ctx, member)
	if err != nil {
		if res.Has("image") {
			s.retention.Release(ctx, media.KindTeam, res.Ref("image"))
		}
		return nil, fmt.Errorf("update team member: %w", err)
	}
	// Superseded portrait is released only after the record persisted.
	if res.Has("image") && existing.Image != "" {
		s.retention.Release(ctx, media.KindTeam, existing.Image)
	}
	return stored, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	s.retention.Release(ctx, media.KindTeam, existing.Image)
	return nil
}
