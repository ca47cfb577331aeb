package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/service"
)

type teamRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type updateTeamRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

func (s *Server) handleCreateTeam(c echo.Context) error {
	var req teamRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	team, err := s.services.Teams.Create(c.Request().Context(), currentUser(c), service.TeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, team)
}

func (s *Server) handleListTeams(c echo.Context) error {
	skip, limit := pagination(c)
	teams, err := s.services.Teams.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teams)
}

func (s *Server) handleGetTeam(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	team, err := s.services.Teams.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

func (s *Server) handleUpdateTeam(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTeamRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	team, err := s.services.Teams.Update(c.Request().Context(), currentUser(c), id, service.TeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

func (s *Server) handleDeleteTeam(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Teams.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
