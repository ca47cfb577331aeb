package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Vaidiasri/linear-backend/internal/auth"
	"github.com/Vaidiasri/linear-backend/internal/config"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
	"github.com/Vaidiasri/linear-backend/internal/service"
)

// Services bundles the application services the handlers dispatch to.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Teams      *service.TeamService
	Projects   *service.ProjectService
	Issues     *service.IssueService
	Comments   *service.CommentService
	Dashboards *service.DashboardService
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	db        *pgxpool.Pool
	redis     *goredis.Client
	registry  *realtime.Registry
	resolver  *auth.Resolver
	tokens    *auth.TokenService
	limits    *ConnectionLimits
	clock     clockwork.Clock
	startTime time.Time

	services Services
}

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.ValidationError(err.Error())
	}
	return nil
}

func NewServer(
	cfg *config.Config,
	db *pgxpool.Pool,
	rdb *goredis.Client,
	registry *realtime.Registry,
	resolver *auth.Resolver,
	tokens *auth.TokenService,
	services Services,
	clock clockwork.Clock,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &echoValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		db:        db,
		redis:     rdb,
		registry:  registry,
		resolver:  resolver,
		tokens:    tokens,
		limits:    NewConnectionLimits(cfg.WSMaxConnections, cfg.WSMaxPerIP, wsConnRate, wsConnBurst),
		clock:     clock,
		startTime: clock.Now(),
		services:  services,
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
