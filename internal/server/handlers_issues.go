package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/service"
)

type createIssueRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Description string     `json:"description" validate:"max=10000"`
	Status      string     `json:"status" validate:"omitempty,oneof=backlog todo in_progress done cancelled"`
	Priority    int        `json:"priority" validate:"min=0,max=4"`
	TeamID      *uuid.UUID `json:"team_id"`
	ProjectID   *uuid.UUID `json:"project_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type updateIssueRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=backlog todo in_progress done cancelled"`
	Priority    *int       `json:"priority" validate:"omitempty,min=0,max=4"`
	TeamID      *uuid.UUID `json:"team_id"`
	ProjectID   *uuid.UUID `json:"project_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// issueFilters reads listing filters from query params.
func issueFilters(c echo.Context) (domain.IssueFilters, error) {
	filters := domain.IssueFilters{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	if value := c.QueryParam("priority"); value != "" {
		priority, err := strconv.Atoi(value)
		if err != nil {
			return filters, apperrors.ValidationError("invalid priority")
		}
		filters.Priority = &priority
	}

	var err error
	if filters.TeamID, err = optionalUUID(c, "team_id"); err != nil {
		return filters, err
	}
	if filters.ProjectID, err = optionalUUID(c, "project_id"); err != nil {
		return filters, err
	}
	if filters.AssigneeID, err = optionalUUID(c, "assignee_id"); err != nil {
		return filters, err
	}
	return filters, nil
}

func (s *Server) handleCreateIssue(c echo.Context) error {
	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	issue, err := s.services.Issues.Create(c.Request().Context(), currentUser(c), service.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TeamID:      req.TeamID,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, issue)
}

func (s *Server) handleListIssues(c echo.Context) error {
	filters, err := issueFilters(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	issues, err := s.services.Issues.List(c.Request().Context(), currentUser(c), filters, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

func (s *Server) handleSearchIssues(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("q is required")
	}
	skip, limit := pagination(c)

	issues, err := s.services.Issues.Search(c.Request().Context(), query, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

func (s *Server) handleIssueStats(c echo.Context) error {
	stats, err := s.services.Issues.Stats(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleExportIssues(c echo.Context) error {
	filters, err := issueFilters(c)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="issues.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return s.services.Issues.ExportCSV(c.Request().Context(), currentUser(c), filters, c.Response())
}

func (s *Server) handleGetIssue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	issue, err := s.services.Issues.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

func (s *Server) handleUpdateIssue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	issue, err := s.services.Issues.Update(c.Request().Context(), currentUser(c), id, service.UpdateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TeamID:      req.TeamID,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

func (s *Server) handleDeleteIssue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Issues.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleIssueActivities(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	activities, err := s.services.Issues.Activities(c.Request().Context(), id, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}
