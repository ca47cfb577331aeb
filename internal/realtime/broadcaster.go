package realtime

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/metrics"
)

// Broadcaster is the surface the CRUD services call after a successful
// commit. It serializes the event once and fans it out through the Registry.
// Publishing is fire-and-forget relative to the HTTP response: delivery
// failures are self-healed by the registry and never reach the caller.
type Broadcaster struct {
	registry *Registry
}

func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// Publish delivers event to teamID's members plus all admin channels.
// Use uuid.Nil for entities with no team; admins still receive the event.
func (b *Broadcaster) Publish(teamID uuid.UUID, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "event", string(event.Kind), "error", err)
		return
	}

	teamSent, adminSent := b.registry.Broadcast(teamID, data)
	metrics.BroadcastsTotal.WithLabelValues(string(event.Kind)).Inc()
	slog.Debug("Event broadcast",
		"event", string(event.Kind),
		"team_id", teamID.String(),
		"team_delivered", teamSent,
		"admin_delivered", adminSent,
	)
}

// PublishAll delivers event to every registered channel regardless of team.
func (b *Broadcaster) PublishAll(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "event", string(event.Kind), "error", err)
		return
	}

	teamSent, adminSent := b.registry.BroadcastAll(data)
	metrics.BroadcastsTotal.WithLabelValues(string(event.Kind)).Inc()
	slog.Debug("Event broadcast to all",
		"event", string(event.Kind),
		"team_delivered", teamSent,
		"admin_delivered", adminSent,
	)
}
