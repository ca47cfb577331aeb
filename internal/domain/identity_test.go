package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveIdentity_AdminWinsOverTeam(t *testing.T) {
	teamID := uuid.New()
	user := &User{ID: uuid.New(), Role: RoleAdmin, TeamID: &teamID}

	identity, ok := ResolveIdentity(user)
	assert.True(t, ok)
	assert.Equal(t, IdentityAdmin, identity.Kind)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestResolveIdentity_TeamMember(t *testing.T) {
	teamID := uuid.New()
	for _, role := range []Role{RoleTeamLead, RoleMember} {
		user := &User{ID: uuid.New(), Role: role, TeamID: &teamID}

		identity, ok := ResolveIdentity(user)
		assert.True(t, ok)
		assert.Equal(t, IdentityTeamMember, identity.Kind)
		assert.Equal(t, teamID, identity.TeamID)
	}
}

func TestResolveIdentity_NoEnrollment(t *testing.T) {
	user := &User{ID: uuid.New(), Role: RoleMember}

	_, ok := ResolveIdentity(user)
	assert.False(t, ok)
}
