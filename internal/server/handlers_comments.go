package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
)

type createCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=10000"`
}

func (s *Server) handleCreateComment(c echo.Context) error {
	issueID, err := pathID(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := s.services.Comments.Create(c.Request().Context(), currentUser(c), issueID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (s *Server) handleListComments(c echo.Context) error {
	issueID, err := pathID(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	comments, err := s.services.Comments.ListByIssue(c.Request().Context(), issueID, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (s *Server) handleDeleteComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Comments.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
