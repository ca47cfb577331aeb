package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
)

// UserService manages user accounts beyond registration.
type UserService struct {
	users domain.UserRepository
	teams domain.TeamRepository
}

func NewUserService(users domain.UserRepository, teams domain.TeamRepository) *UserService {
	return &UserService{users: users, teams: teams}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperrors.NotFoundError("user not found")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load user", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to list users", err)
	}
	return users, nil
}

// UpdateUserInput carries the optional fields of a profile update. Nil fields
// are left unchanged.
type UpdateUserInput struct {
	FullName *string
	Role     *domain.Role
	TeamID   *uuid.UUID
}

// Update modifies a user. Users may update their own name; role and team
// assignment require admin.
func (s *UserService) Update(ctx context.Context, current *domain.User, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if current.ID != id && current.Role != domain.RoleAdmin {
		return nil, apperrors.ForbiddenError("not allowed to update this user")
	}
	if (input.Role != nil || input.TeamID != nil) && current.Role != domain.RoleAdmin {
		return nil, apperrors.ForbiddenError("only admins may change roles or teams")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		switch *input.Role {
		case domain.RoleAdmin, domain.RoleTeamLead, domain.RoleMember:
		default:
			return nil, apperrors.ValidationError("unknown role")
		}
		user.Role = *input.Role
	}
	if input.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, domain.ErrTeamNotFound) {
				return nil, apperrors.NotFoundError("team not found")
			}
			return nil, apperrors.InternalError("failed to load team", err)
		}
		user.TeamID = input.TeamID
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError("failed to update user", err)
	}
	return user, nil
}

// Delete removes a user account. Admin only.
func (s *UserService) Delete(ctx context.Context, current *domain.User, id uuid.UUID) error {
	if current.Role != domain.RoleAdmin {
		return apperrors.ForbiddenError("only admins may delete users")
	}
	err := s.users.Delete(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.NotFoundError("user not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to delete user", err)
	}
	return nil
}
