package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ValidationError("x").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, UnauthorizedError("x").HTTPStatus())
	assert.Equal(t, http.StatusForbidden, ForbiddenError("x").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFoundError("x").HTTPStatus())
	assert.Equal(t, http.StatusConflict, ConflictError("x").HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, RateLimitedError("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, InternalError("x", nil).HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, ExternalError("x", nil).HTTPStatus())
}

func TestError_UnwrapAndContext(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("wrapped", cause).WithContext("issue_id", "abc")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "abc", err.Context["issue_id"])
	assert.Contains(t, err.Error(), "root cause")
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	original := NotFoundError("issue not found")
	assert.Same(t, original, AsStructuredError(original))

	wrapped := AsStructuredError(errors.New("boom"))
	require.NotNil(t, wrapped)
	assert.Equal(t, TypeInternal, wrapped.Type)
}

func TestWrapHTTPError(t *testing.T) {
	httpErr := echo.NewHTTPError(http.StatusTooManyRequests, "slow down")
	wrapped := WrapHTTPError(httpErr)
	assert.Equal(t, TypeRateLimited, wrapped.Type)
	assert.Equal(t, "slow down", wrapped.Message)
}
