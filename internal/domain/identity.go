package domain

import "github.com/google/uuid"

// IdentityKind distinguishes how a realtime connection is enrolled.
type IdentityKind int

const (
	// IdentityAdmin enrolls the connection into the admin set. Admin status
	// takes priority even when the user also belongs to a team.
	IdentityAdmin IdentityKind = iota
	// IdentityTeamMember enrolls the connection into the user's team set.
	IdentityTeamMember
)

// Identity is the resolved view of a bearer token that the realtime layer
// consumes: who the user is and which membership set their channel joins.
type Identity struct {
	UserID uuid.UUID
	Kind   IdentityKind
	TeamID uuid.UUID // valid only when Kind == IdentityTeamMember
}

// ResolveIdentity classifies a user for realtime enrollment. The boolean is
// false when the user is neither an admin nor a team member, in which case
// the connection must be rejected.
func ResolveIdentity(user *User) (Identity, bool) {
	if user.Role == RoleAdmin {
		return Identity{UserID: user.ID, Kind: IdentityAdmin}, true
	}
	if user.TeamID != nil {
		return Identity{UserID: user.ID, Kind: IdentityTeamMember, TeamID: *user.TeamID}, true
	}
	return Identity{}, false
}
