// Package service holds the application services the HTTP handlers delegate
// to: validation, persistence orchestration, activity logging, and realtime
// event production after successful commits.
package service

import (
	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

// EventPublisher is the broadcast trigger surface. Publishing is
// fire-and-forget: it happens after the persistent commit and never affects
// the HTTP response.
type EventPublisher interface {
	Publish(teamID uuid.UUID, event realtime.Event)
}

// eventTeam maps an entity's optional team to the broadcast partition.
// uuid.Nil has no members, so team-less entities reach admins only.
func eventTeam(teamID *uuid.UUID) uuid.UUID {
	if teamID == nil {
		return uuid.Nil
	}
	return *teamID
}

// nopPublisher discards events; used when the realtime layer is disabled.
type nopPublisher struct{}

func (nopPublisher) Publish(uuid.UUID, realtime.Event) {}

// NopPublisher returns a publisher that drops every event.
func NopPublisher() EventPublisher { return nopPublisher{} }

var _ EventPublisher = (*realtime.Broadcaster)(nil)

// stringOrNone renders an optional value for activity log entries.
func stringOrNone(v *uuid.UUID) string {
	if v == nil {
		return "None"
	}
	return v.String()
}
