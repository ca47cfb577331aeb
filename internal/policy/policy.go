// Package policy implements role-based access as an ordered list scan:
// the first rule whose action pattern and condition both match grants access.
package policy

import (
	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

// Resource is the policy-relevant view of an entity under access control.
type Resource struct {
	CreatorID *uuid.UUID
	TeamID    *uuid.UUID
}

// IssueResource extracts the policy view of an issue.
func IssueResource(issue *domain.Issue) *Resource {
	creator := issue.CreatorID
	return &Resource{CreatorID: &creator, TeamID: issue.TeamID}
}

// ProjectResource extracts the policy view of a project.
func ProjectResource(project *domain.Project) *Resource {
	return &Resource{TeamID: project.TeamID}
}

type condition func(user *domain.User, resource *Resource) bool

type rule struct {
	name      string
	action    string // "*" matches any action
	condition condition
}

func isAdmin(user *domain.User, _ *Resource) bool {
	return user.Role == domain.RoleAdmin
}

func isTeamLead(user *domain.User, _ *Resource) bool {
	return user.Role == domain.RoleTeamLead
}

func isMember(user *domain.User, _ *Resource) bool {
	return user.Role == domain.RoleMember
}

func isCreator(user *domain.User, resource *Resource) bool {
	if resource == nil || resource.CreatorID == nil {
		return false
	}
	return *resource.CreatorID == user.ID
}

func isTeamResource(user *domain.User, resource *Resource) bool {
	if resource == nil || resource.TeamID == nil || user.TeamID == nil {
		return false
	}
	return *resource.TeamID == *user.TeamID
}

func and(conds ...condition) condition {
	return func(user *domain.User, resource *Resource) bool {
		for _, cond := range conds {
			if !cond(user, resource) {
				return false
			}
		}
		return true
	}
}

var rules = []rule{
	// Admin: matches any action on any resource.
	{name: "admin_access", action: "*", condition: isAdmin},

	// Team lead: full control over issues belonging to their team.
	{name: "team_lead_create_team_issues", action: "issue:create", condition: and(isTeamLead, isTeamResource)},
	{name: "team_lead_read_team_issues", action: "issue:read", condition: and(isTeamLead, isTeamResource)},
	{name: "team_lead_update_team_issues", action: "issue:update", condition: and(isTeamLead, isTeamResource)},
	{name: "team_lead_delete_team_issues", action: "issue:delete", condition: and(isTeamLead, isTeamResource)},

	// Member: create and read generally, update only own issues.
	{name: "member_create_issue", action: "issue:create", condition: isMember},
	{name: "member_read_issue", action: "issue:read", condition: isMember},
	{name: "member_update_own_issue", action: "issue:update", condition: and(isMember, isCreator)},
	{name: "member_delete_own_issue", action: "issue:delete", condition: and(isMember, isCreator)},
}

// Can reports whether user may perform action on resource.
func Can(user *domain.User, action string, resource *Resource) bool {
	for _, r := range rules {
		if r.action != "*" && r.action != action {
			continue
		}
		if r.condition(user, resource) {
			return true
		}
	}
	return false
}
