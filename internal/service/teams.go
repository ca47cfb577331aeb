package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
)

// TeamService manages teams. Mutations are admin-only; reads are open to any
// authenticated user.
type TeamService struct {
	teams domain.TeamRepository
}

func NewTeamService(teams domain.TeamRepository) *TeamService {
	return &TeamService{teams: teams}
}

type TeamInput struct {
	Name        string
	Description string
}

func (s *TeamService) Create(ctx context.Context, current *domain.User, input TeamInput) (*domain.Team, error) {
	if current.Role != domain.RoleAdmin {
		return nil, apperrors.ForbiddenError("only admins may create teams")
	}
	team := &domain.Team{Name: input.Name, Description: input.Description}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperrors.InternalError("failed to create team", err)
	}
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if errors.Is(err, domain.ErrTeamNotFound) {
		return nil, apperrors.NotFoundError("team not found")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load team", err)
	}
	return team, nil
}

func (s *TeamService) List(ctx context.Context, skip, limit int) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to list teams", err)
	}
	return teams, nil
}

func (s *TeamService) Update(ctx context.Context, current *domain.User, id uuid.UUID, input TeamInput) (*domain.Team, error) {
	if current.Role != domain.RoleAdmin {
		return nil, apperrors.ForbiddenError("only admins may update teams")
	}
	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		team.Name = input.Name
	}
	if input.Description != "" {
		team.Description = input.Description
	}
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, apperrors.InternalError("failed to update team", err)
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, current *domain.User, id uuid.UUID) error {
	if current.Role != domain.RoleAdmin {
		return apperrors.ForbiddenError("only admins may delete teams")
	}
	err := s.teams.Delete(ctx, id)
	if errors.Is(err, domain.ErrTeamNotFound) {
		return apperrors.NotFoundError("team not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to delete team", err)
	}
	return nil
}
