package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

// countingLookup returns a fixed user and counts how often it is hit.
type countingLookup struct {
	user  *domain.User
	err   error
	calls int
}

func (l *countingLookup) GetByID(_ context.Context, _ uuid.UUID) (*domain.User, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.user, nil
}

func newResolverFixture(t *testing.T, user *domain.User) (*Resolver, *countingLookup, *clockwork.FakeClock, string) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	tokens := NewTokenService(testSecret, time.Hour, clock)
	lookup := &countingLookup{user: user}
	resolver := NewResolver(tokens, lookup, time.Minute, clock)

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	return resolver, lookup, clock, token
}

func teamUser() *domain.User {
	teamID := uuid.New()
	return &domain.User{ID: uuid.New(), Role: domain.RoleMember, TeamID: &teamID}
}

func TestResolver_CachesWithinTTL(t *testing.T) {
	user := teamUser()
	resolver, lookup, _, token := newResolverFixture(t, user)

	first, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityTeamMember, first.Kind)
	assert.Equal(t, *user.TeamID, first.TeamID)
	assert.Equal(t, 1, lookup.calls)

	// Second resolve is served from cache: no extra lookup.
	second, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, lookup.calls)
	assert.Equal(t, 1, resolver.Size())
}

func TestResolver_ExpiredEntryIsReResolved(t *testing.T) {
	user := teamUser()
	resolver, lookup, clock, token := newResolverFixture(t, user)

	_, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	_, err = resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 2, lookup.calls)
}

func TestResolver_AdminWins(t *testing.T) {
	teamID := uuid.New()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, TeamID: &teamID}
	resolver, _, _, token := newResolverFixture(t, admin)

	identity, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityAdmin, identity.Kind)
}

func TestResolver_InvalidToken(t *testing.T) {
	resolver, lookup, _, _ := newResolverFixture(t, teamUser())

	_, err := resolver.Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Equal(t, 0, lookup.calls)
	assert.Equal(t, 0, resolver.Size())
}

func TestResolver_UnknownUserMapsToInvalidToken(t *testing.T) {
	user := teamUser()
	resolver, lookup, _, token := newResolverFixture(t, user)
	lookup.err = domain.ErrUserNotFound

	_, err := resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Equal(t, 0, resolver.Size())
}

func TestResolver_NotEligibleIsNotCached(t *testing.T) {
	// Member without a team: valid token, no enrollment target.
	user := &domain.User{ID: uuid.New(), Role: domain.RoleMember}
	resolver, lookup, _, token := newResolverFixture(t, user)

	_, err := resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, 0, resolver.Size())

	// Failure is re-checked immediately: the user may have been fixed.
	_, err = resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, 2, lookup.calls)
}
