package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Vaidiasri/linear-backend/internal/auth"
	"github.com/Vaidiasri/linear-backend/internal/config"
	"github.com/Vaidiasri/linear-backend/internal/database"
	"github.com/Vaidiasri/linear-backend/internal/logging"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
	"github.com/Vaidiasri/linear-backend/internal/redis"
	"github.com/Vaidiasri/linear-backend/internal/server"
	"github.com/Vaidiasri/linear-backend/internal/service"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, login rate limiting disabled")
		return nil
	}
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, registry *realtime.Registry) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		registry.Shutdown()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Repositories
	userRepo := database.NewUserRepo(pool)
	teamRepo := database.NewTeamRepo(pool)
	projectRepo := database.NewProjectRepo(pool)
	issueRepo := database.NewIssueRepo(pool)
	commentRepo := database.NewCommentRepo(pool)
	activityRepo := database.NewActivityRepo(pool)

	// Realtime fan-out
	registry := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(registry)

	// Auth
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenExpiry, clock)
	resolver := auth.NewResolver(tokens, userRepo, cfg.IdentityCacheTTL, clock)
	loginLimiter := redis.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	services := server.Services{
		Auth:       service.NewAuthService(userRepo, tokens, loginLimiter),
		Users:      service.NewUserService(userRepo, teamRepo),
		Teams:      service.NewTeamService(teamRepo),
		Projects:   service.NewProjectService(projectRepo, teamRepo, userRepo, broadcaster),
		Issues:     service.NewIssueService(issueRepo, activityRepo, userRepo, teamRepo, projectRepo, broadcaster),
		Comments:   service.NewCommentService(commentRepo, issueRepo, broadcaster),
		Dashboards: service.NewDashboardService(issueRepo),
	}

	srv := server.NewServer(cfg, pool, redisClient, registry, resolver, tokens, services, clock)

	done := runGracefulShutdown(srv, registry)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
