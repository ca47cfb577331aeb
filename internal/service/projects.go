package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

// ProjectService manages projects and publishes project events to the
// project's team after each successful write.
type ProjectService struct {
	projects domain.ProjectRepository
	teams    domain.TeamRepository
	users    domain.UserRepository
	events   EventPublisher
}

func NewProjectService(projects domain.ProjectRepository, teams domain.TeamRepository, users domain.UserRepository, events EventPublisher) *ProjectService {
	return &ProjectService{projects: projects, teams: teams, users: users, events: events}
}

type ProjectInput struct {
	Name        string
	Description string
	TeamID      *uuid.UUID
	LeadID      *uuid.UUID
}

func (s *ProjectService) validateRefs(ctx context.Context, input ProjectInput) error {
	if input.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, domain.ErrTeamNotFound) {
				return apperrors.NotFoundError("team not found")
			}
			return apperrors.InternalError("failed to load team", err)
		}
	}
	if input.LeadID != nil {
		if _, err := s.users.GetByID(ctx, *input.LeadID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return apperrors.NotFoundError("lead user not found")
			}
			return apperrors.InternalError("failed to load lead user", err)
		}
	}
	return nil
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	if err := s.validateRefs(ctx, input); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		TeamID:      input.TeamID,
		LeadID:      input.LeadID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.InternalError("failed to create project", err)
	}

	s.events.Publish(eventTeam(project.TeamID), realtime.ProjectCreated(project))
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return nil, apperrors.NotFoundError("project not found")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load project", err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, skip, limit int) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input ProjectInput) (*domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateRefs(ctx, input); err != nil {
		return nil, err
	}

	if input.Name != "" {
		project.Name = input.Name
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if input.TeamID != nil {
		project.TeamID = input.TeamID
	}
	if input.LeadID != nil {
		project.LeadID = input.LeadID
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.InternalError("failed to update project", err)
	}

	s.events.Publish(eventTeam(project.TeamID), realtime.ProjectUpdated(project))
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return apperrors.NotFoundError("project not found")
		}
		return apperrors.InternalError("failed to delete project", err)
	}

	s.events.Publish(eventTeam(project.TeamID), realtime.ProjectDeleted(project.ID, project.Name))
	return nil
}
