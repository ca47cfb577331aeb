package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/service"
)

type projectRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	TeamID      *uuid.UUID `json:"team_id"`
	LeadID      *uuid.UUID `json:"lead_id"`
}

type updateProjectRequest struct {
	Name        string     `json:"name" validate:"omitempty,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	TeamID      *uuid.UUID `json:"team_id"`
	LeadID      *uuid.UUID `json:"lead_id"`
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := s.services.Projects.Create(c.Request().Context(), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		LeadID:      req.LeadID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) handleListProjects(c echo.Context) error {
	skip, limit := pagination(c)
	projects, err := s.services.Projects.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleGetProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	project, err := s.services.Projects.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := s.services.Projects.Update(c.Request().Context(), id, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		LeadID:      req.LeadID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Projects.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
