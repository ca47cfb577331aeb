package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Vaidiasri/linear-backend/internal/auth"
	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/metrics"
	"github.com/Vaidiasri/linear-backend/internal/redis"
)

// AuthService handles registration and login.
type AuthService struct {
	users   domain.UserRepository
	tokens  *auth.TokenService
	limiter *redis.LoginLimiter
}

func NewAuthService(users domain.UserRepository, tokens *auth.TokenService, limiter *redis.LoginLimiter) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// Register creates a new member account. Email must be unused.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.ConflictError("email already registered")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperrors.InternalError("failed to check email", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	user := &domain.User{
		Email:          input.Email,
		FullName:       input.FullName,
		HashedPassword: hashed,
		Role:           domain.RoleMember,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperrors.ConflictError("email already registered")
		}
		return nil, apperrors.InternalError("failed to create user", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials and issues a bearer token. Attempts are rate
// limited per client IP; the counter resets on success.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (string, *domain.User, error) {
	allowed, err := s.limiter.Allow(ctx, ip)
	if err != nil {
		slog.Warn("login limiter degraded", "error", err)
	}
	if !allowed {
		metrics.LoginAttemptsLimited.Inc()
		return "", nil, apperrors.RateLimitedError("too many login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, apperrors.UnauthorizedError("incorrect email or password")
	}
	if err != nil {
		return "", nil, apperrors.InternalError("failed to load user", err)
	}

	match, err := auth.ComparePassword(password, user.HashedPassword)
	if err != nil || !match {
		return "", nil, apperrors.UnauthorizedError("incorrect email or password")
	}

	if err := s.limiter.Reset(ctx, ip); err != nil {
		slog.Warn("failed to reset login counter", "error", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, apperrors.InternalError("failed to issue token", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return token, user, nil
}
