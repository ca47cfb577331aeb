package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
)

// requireAuth verifies the bearer token and loads the user onto the request
// context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperrors.UnauthorizedError("missing bearer token")
		}

		userID, err := s.tokens.Verify(token)
		if err != nil {
			return apperrors.UnauthorizedError("invalid or expired token")
		}

		user, err := s.services.Users.Get(c.Request().Context(), userID)
		if err != nil {
			return apperrors.UnauthorizedError("invalid or expired token")
		}

		c.Set("userID", user.ID.String())
		c.Set("user", user)
		return next(c)
	}
}

// currentUser returns the user loaded by requireAuth.
func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}
