package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	LogLevel    string
	LogFormat   string

	// Token lifetime for issued JWTs.
	TokenExpiry time.Duration
	// How long a resolved identity may be reused without re-verification.
	IdentityCacheTTL time.Duration

	// WebSocket limits.
	WSMaxConnections int64
	WSMaxPerIP       int
	WSSendTimeout    time.Duration

	// Per-IP request throttling for the HTTP surface (requests per second
	// plus burst headroom).
	HTTPRateLimit int
	HTTPRateBurst int

	// Login brute-force limiter (requires RedisURL).
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(cfg.JWTSecret))
	}

	var err error
	if cfg.TokenExpiry, err = getDuration("TOKEN_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.IdentityCacheTTL, err = getDuration("IDENTITY_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.WSSendTimeout, err = getDuration("WS_SEND_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.LoginWindow, err = getDuration("LOGIN_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	maxConns, err := getInt("WS_MAX_CONNECTIONS", 10000)
	if err != nil {
		return nil, err
	}
	cfg.WSMaxConnections = int64(maxConns)

	if cfg.WSMaxPerIP, err = getInt("WS_MAX_PER_IP", 20); err != nil {
		return nil, err
	}
	if cfg.LoginMaxAttempts, err = getInt("LOGIN_MAX_ATTEMPTS", 10); err != nil {
		return nil, err
	}
	if cfg.HTTPRateLimit, err = getInt("HTTP_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.HTTPRateBurst, err = getInt("HTTP_RATE_BURST", 40); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 60s): %w", key, err)
	}
	return d, nil
}
