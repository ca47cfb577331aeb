package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limited := s.rateLimiter()

	// Auth
	s.echo.POST("/auth/register", s.handleRegister, limited)
	s.echo.POST("/auth/login", s.handleLogin, limited)

	// Authenticated REST API
	api := s.echo.Group("/api", limited, s.requireAuth)

	api.GET("/users/me", s.handleCurrentUser)
	api.GET("/users", s.handleListUsers)
	api.GET("/users/:id", s.handleGetUser)
	api.PATCH("/users/:id", s.handleUpdateUser)
	api.DELETE("/users/:id", s.handleDeleteUser)

	api.POST("/teams", s.handleCreateTeam)
	api.GET("/teams", s.handleListTeams)
	api.GET("/teams/:id", s.handleGetTeam)
	api.PATCH("/teams/:id", s.handleUpdateTeam)
	api.DELETE("/teams/:id", s.handleDeleteTeam)

	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/:id", s.handleGetProject)
	api.PATCH("/projects/:id", s.handleUpdateProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)

	api.POST("/issues", s.handleCreateIssue)
	api.GET("/issues", s.handleListIssues)
	api.GET("/issues/search", s.handleSearchIssues)
	api.GET("/issues/stats", s.handleIssueStats)
	api.GET("/issues/export", s.handleExportIssues)
	api.GET("/issues/:id", s.handleGetIssue)
	api.PATCH("/issues/:id", s.handleUpdateIssue)
	api.DELETE("/issues/:id", s.handleDeleteIssue)
	api.GET("/issues/:id/activities", s.handleIssueActivities)

	api.POST("/issues/:id/comments", s.handleCreateComment)
	api.GET("/issues/:id/comments", s.handleListComments)
	api.DELETE("/comments/:id", s.handleDeleteComment)

	api.GET("/dashboard", s.handleDashboard)

	// WebSocket endpoint. Auth happens after the upgrade: browsers cannot set
	// headers on WebSocket requests, so the token travels as a query param.
	s.echo.GET("/ws", s.handleWebSocket)
}
