package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/service"
)

func (s *Server) handleCurrentUser(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleListUsers(c echo.Context) error {
	skip, limit := pagination(c)
	users, err := s.services.Users.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := s.services.Users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	FullName *string    `json:"full_name" validate:"omitempty,min=1,max=200"`
	Role     *string    `json:"role" validate:"omitempty,oneof=admin team_lead member"`
	TeamID   *uuid.UUID `json:"team_id"`
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.UpdateUserInput{FullName: req.FullName, TeamID: req.TeamID}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := s.services.Users.Update(c.Request().Context(), currentUser(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Users.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
