package service

import (
	"context"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
)

// Dashboard is the per-user overview: aggregate counts plus the most recent
// issues.
type Dashboard struct {
	Stats        *domain.IssueStats `json:"stats"`
	RecentIssues []domain.Issue     `json:"recent_issues"`
}

// DashboardService assembles the overview from the issue repository.
type DashboardService struct {
	issues domain.IssueRepository
}

func NewDashboardService(issues domain.IssueRepository) *DashboardService {
	return &DashboardService{issues: issues}
}

const recentIssueCount = 10

func (s *DashboardService) Overview(ctx context.Context, current *domain.User) (*Dashboard, error) {
	stats, err := s.issues.Stats(ctx, current.ID)
	if err != nil {
		return nil, apperrors.InternalError("failed to load issue stats", err)
	}
	recent, err := s.issues.List(ctx, current.ID, domain.IssueFilters{}, 0, recentIssueCount)
	if err != nil {
		return nil, apperrors.InternalError("failed to load recent issues", err)
	}
	return &Dashboard{Stats: stats, RecentIssues: recent}, nil
}
