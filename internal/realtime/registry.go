package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/metrics"
)

// Channel is an opaque send endpoint for one live connection. The Registry
// holds a non-owning reference: the connection handler that created the
// channel remains responsible for its lifetime.
type Channel interface {
	Send(data []byte) error
	Close() error
}

type channelSet map[Channel]struct{}

// Registry is the authoritative in-memory record of who is listening.
// Team members are grouped by team id; admin channels live in a flat set and
// receive every team's broadcasts. All state is rebuilt from nothing on
// process restart; clients reconnect, which is the correct recovery.
type Registry struct {
	mu     sync.Mutex
	teams  map[uuid.UUID]channelSet
	admins channelSet
}

func NewRegistry() *Registry {
	return &Registry{
		teams:  make(map[uuid.UUID]channelSet),
		admins: make(channelSet),
	}
}

// RegisterTeamMember adds ch to the team's membership set, creating the set
// if absent.
func (r *Registry) RegisterTeamMember(teamID uuid.UUID, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.teams[teamID]
	if !ok {
		set = make(channelSet)
		r.teams[teamID] = set
	}
	set[ch] = struct{}{}

	metrics.RegistryActiveTeams.Set(float64(len(r.teams)))
	metrics.RegistryChannels.WithLabelValues("team").Inc()
	slog.Debug("Channel registered", "team_id", teamID.String(), "team_members", len(set))
}

// RegisterAdmin adds ch to the admin set.
func (r *Registry) RegisterAdmin(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.admins[ch] = struct{}{}

	metrics.RegistryChannels.WithLabelValues("admin").Inc()
	slog.Debug("Admin channel registered", "admin_channels", len(r.admins))
}

// DeregisterTeamMember removes ch from the team's set. Removing a channel
// that is not present is a no-op: cleanup may run from both the disconnect
// path and the failed-send path for the same channel. When the set becomes
// empty the team entry itself is removed.
func (r *Registry) DeregisterTeamMember(teamID uuid.UUID, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deregisterTeamMemberLocked(teamID, ch)
}

func (r *Registry) deregisterTeamMemberLocked(teamID uuid.UUID, ch Channel) {
	set, ok := r.teams[teamID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}

	delete(set, ch)
	metrics.RegistryChannels.WithLabelValues("team").Dec()

	if len(set) == 0 {
		delete(r.teams, teamID)
		metrics.RegistryActiveTeams.Set(float64(len(r.teams)))
		slog.Debug("Last channel left team", "team_id", teamID.String())
	}
}

// DeregisterAdmin removes ch from the admin set; no-op if absent.
func (r *Registry) DeregisterAdmin(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deregisterAdminLocked(ch)
}

func (r *Registry) deregisterAdminLocked(ch Channel) {
	if _, ok := r.admins[ch]; !ok {
		return
	}
	delete(r.admins, ch)
	metrics.RegistryChannels.WithLabelValues("admin").Dec()
}

// TeamCount returns the number of channels registered for a team.
func (r *Registry) TeamCount(teamID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.teams[teamID])
}

// AdminCount returns the number of registered admin channels.
func (r *Registry) AdminCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admins)
}

// Broadcast delivers data to every channel in the team's set plus every
// admin channel. Delivery is attempted for each recipient independently;
// failing channels are deregistered and the rest are still attempted.
// Returns the number of successful team and admin deliveries.
func (r *Registry) Broadcast(teamID uuid.UUID, data []byte) (teamSent, adminSent int) {
	// Snapshot under the lock, send outside it. A send can block (bounded by
	// the writer's enqueue timeout) and a failed send mutates the live set,
	// so iterating the set itself would race with its own cleanup.
	r.mu.Lock()
	team := make([]Channel, 0, len(r.teams[teamID]))
	for ch := range r.teams[teamID] {
		team = append(team, ch)
	}
	admins := make([]Channel, 0, len(r.admins))
	for ch := range r.admins {
		admins = append(admins, ch)
	}
	r.mu.Unlock()

	var failedTeam, failedAdmins []Channel
	for _, ch := range team {
		if err := ch.Send(data); err != nil {
			slog.Warn("Dropping dead channel", "team_id", teamID.String(), "error", err)
			failedTeam = append(failedTeam, ch)
			continue
		}
		teamSent++
	}
	for _, ch := range admins {
		if err := ch.Send(data); err != nil {
			slog.Warn("Dropping dead admin channel", "error", err)
			failedAdmins = append(failedAdmins, ch)
			continue
		}
		adminSent++
	}

	if len(failedTeam) > 0 || len(failedAdmins) > 0 {
		r.mu.Lock()
		for _, ch := range failedTeam {
			r.deregisterTeamMemberLocked(teamID, ch)
		}
		for _, ch := range failedAdmins {
			r.deregisterAdminLocked(ch)
		}
		r.mu.Unlock()
	}

	metrics.BroadcastDeliveries.WithLabelValues("team").Add(float64(teamSent))
	metrics.BroadcastDeliveries.WithLabelValues("admin").Add(float64(adminSent))
	metrics.BroadcastDeliveryFailures.Add(float64(len(failedTeam) + len(failedAdmins)))

	return teamSent, adminSent
}

// BroadcastAll delivers data to every channel across every team set plus the
// admin set, with the same per-channel failure isolation as Broadcast.
func (r *Registry) BroadcastAll(data []byte) (teamSent, adminSent int) {
	r.mu.Lock()
	teamIDs := make([]uuid.UUID, 0, len(r.teams))
	for id := range r.teams {
		teamIDs = append(teamIDs, id)
	}
	r.mu.Unlock()

	for _, id := range teamIDs {
		t, _ := r.broadcastTeamOnly(id, data)
		teamSent += t
	}

	r.mu.Lock()
	admins := make([]Channel, 0, len(r.admins))
	for ch := range r.admins {
		admins = append(admins, ch)
	}
	r.mu.Unlock()

	var failed []Channel
	for _, ch := range admins {
		if err := ch.Send(data); err != nil {
			failed = append(failed, ch)
			continue
		}
		adminSent++
	}
	if len(failed) > 0 {
		r.mu.Lock()
		for _, ch := range failed {
			r.deregisterAdminLocked(ch)
		}
		r.mu.Unlock()
	}

	metrics.BroadcastDeliveries.WithLabelValues("team").Add(float64(teamSent))
	metrics.BroadcastDeliveries.WithLabelValues("admin").Add(float64(adminSent))
	metrics.BroadcastDeliveryFailures.Add(float64(len(failed)))

	return teamSent, adminSent
}

func (r *Registry) broadcastTeamOnly(teamID uuid.UUID, data []byte) (sent, failedCount int) {
	r.mu.Lock()
	team := make([]Channel, 0, len(r.teams[teamID]))
	for ch := range r.teams[teamID] {
		team = append(team, ch)
	}
	r.mu.Unlock()

	var failed []Channel
	for _, ch := range team {
		if err := ch.Send(data); err != nil {
			failed = append(failed, ch)
			continue
		}
		sent++
	}
	if len(failed) > 0 {
		r.mu.Lock()
		for _, ch := range failed {
			r.deregisterTeamMemberLocked(teamID, ch)
		}
		r.mu.Unlock()
	}
	metrics.BroadcastDeliveryFailures.Add(float64(len(failed)))
	return sent, len(failed)
}

// Shutdown closes every registered channel and clears all membership sets.
// Used during graceful shutdown; clients reconnect after restart.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	channels := make([]Channel, 0, len(r.admins))
	for ch := range r.admins {
		channels = append(channels, ch)
	}
	for _, set := range r.teams {
		for ch := range set {
			channels = append(channels, ch)
		}
	}
	r.teams = make(map[uuid.UUID]channelSet)
	r.admins = make(channelSet)
	r.mu.Unlock()

	for _, ch := range channels {
		_ = ch.Close()
	}

	metrics.RegistryActiveTeams.Set(0)
	metrics.RegistryChannels.Reset()
	slog.Info("Registry shut down", "closed_channels", len(channels))
}
