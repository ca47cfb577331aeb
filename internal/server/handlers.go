package server

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pagination reads skip/limit query params with sane bounds.
func pagination(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}

// pathID parses the :id path param as a UUID.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid id")
	}
	return id, nil
}

// optionalUUID parses a query param into a *uuid.UUID, nil when absent.
func optionalUUID(c echo.Context, name string) (*uuid.UUID, error) {
	value := c.QueryParam(name)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperrors.ValidationError("invalid " + name)
	}
	return &id, nil
}
