package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	"github.com/Vaidiasri/linear-backend/internal/metrics"
)

// ErrNotEligible marks a valid token whose user can join neither the admin
// set nor a team set. The connection is rejected with a generic policy code.
var ErrNotEligible = errors.New("user has no realtime enrollment")

// UserLookup is the subset of domain.UserRepository the resolver needs.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type cacheEntry struct {
	identity   domain.Identity
	resolvedAt time.Time
}

// Resolver turns an opaque bearer token into a realtime Identity.
//
// A short-lived cache keyed by the raw token string short-circuits both the
// signature verification and the user lookup during reconnect storms.
// Entries are evicted lazily on the next lookup past the TTL; failed
// resolutions are never cached, so a corrected token is re-checked
// immediately rather than waiting out a TTL of failure.
type Resolver struct {
	tokens *TokenService
	users  UserLookup
	clock  clockwork.Clock
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewResolver(tokens *TokenService, users UserLookup, ttl time.Duration, clock clockwork.Clock) *Resolver {
	return &Resolver{
		tokens: tokens,
		users:  users,
		clock:  clock,
		ttl:    ttl,
		cache:  make(map[string]cacheEntry),
	}
}

// Resolve returns the identity for token, from cache when fresh.
// Returns domain.ErrInvalidToken for bad credentials and ErrNotEligible for
// users with neither admin role nor a team.
func (r *Resolver) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	now := r.clock.Now()

	r.mu.Lock()
	if entry, ok := r.cache[token]; ok {
		if now.Sub(entry.resolvedAt) < r.ttl {
			r.mu.Unlock()
			metrics.IdentityCacheHits.Inc()
			return entry.identity, nil
		}
		delete(r.cache, token)
		metrics.IdentityCacheSize.Set(float64(len(r.cache)))
	}
	r.mu.Unlock()

	metrics.IdentityCacheMisses.Inc()

	userID, err := r.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, err
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, domain.ErrInvalidToken
		}
		return domain.Identity{}, err
	}

	identity, ok := domain.ResolveIdentity(user)
	if !ok {
		return domain.Identity{}, ErrNotEligible
	}

	r.mu.Lock()
	r.cache[token] = cacheEntry{identity: identity, resolvedAt: now}
	metrics.IdentityCacheSize.Set(float64(len(r.cache)))
	r.mu.Unlock()

	return identity, nil
}

// Size returns the current number of cache entries (including stale ones not
// yet touched).
func (r *Resolver) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
