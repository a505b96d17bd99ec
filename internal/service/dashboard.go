package service

import (
	"context"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// DashboardService reports record totals for the admin dashboard.
type DashboardService interface {
	Counts(ctx context.Context) (*model.DashboardCounts, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Counts(ctx context.Context) (*model.DashboardCounts, error) {
	return s.repo.Counts(ctx)
}
