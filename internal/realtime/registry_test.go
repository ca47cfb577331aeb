package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records sends and can be told to fail.
type fakeChannel struct {
	mu       sync.Mutex
	sent     [][]byte
	failSend bool
	closed   bool
}

func (f *fakeChannel) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("peer gone")
	}
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.sent...)
}

func TestRegistry_RegisterAndCount(t *testing.T) {
	r := NewRegistry()
	teamID := uuid.New()

	assert.Equal(t, 0, r.TeamCount(teamID))

	a, b := &fakeChannel{}, &fakeChannel{}
	r.RegisterTeamMember(teamID, a)
	r.RegisterTeamMember(teamID, b)
	assert.Equal(t, 2, r.TeamCount(teamID))

	admin := &fakeChannel{}
	r.RegisterAdmin(admin)
	assert.Equal(t, 1, r.AdminCount())
}

func TestRegistry_DeregisterRemovesEmptyTeam(t *testing.T) {
	r := NewRegistry()
	teamID := uuid.New()
	a, b := &fakeChannel{}, &fakeChannel{}

	r.RegisterTeamMember(teamID, a)
	r.RegisterTeamMember(teamID, b)

	r.DeregisterTeamMember(teamID, a)
	assert.Equal(t, 1, r.TeamCount(teamID))

	// Team entry survives while members remain.
	r.mu.Lock()
	_, ok := r.teams[teamID]
	r.mu.Unlock()
	assert.True(t, ok)

	r.DeregisterTeamMember(teamID, b)
	assert.Equal(t, 0, r.TeamCount(teamID))

	// Last member out removes the team entry itself.
	r.mu.Lock()
	_, ok = r.teams[teamID]
	r.mu.Unlock()
	assert.False(t, ok)
}

func TestRegistry_DeregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	teamID := uuid.New()
	ch := &fakeChannel{}

	r.RegisterTeamMember(teamID, ch)
	r.DeregisterTeamMember(teamID, ch)
	r.DeregisterTeamMember(teamID, ch) // second call is a no-op
	r.DeregisterTeamMember(uuid.New(), ch)
	assert.Equal(t, 0, r.TeamCount(teamID))

	admin := &fakeChannel{}
	r.RegisterAdmin(admin)
	r.DeregisterAdmin(admin)
	r.DeregisterAdmin(admin)
	assert.Equal(t, 0, r.AdminCount())
}

func TestRegistry_BroadcastNoRecipients(t *testing.T) {
	r := NewRegistry()

	teamSent, adminSent := r.Broadcast(uuid.New(), []byte(`{"event":"ISSUE_CREATED"}`))
	assert.Equal(t, 0, teamSent)
	assert.Equal(t, 0, adminSent)
}

func TestRegistry_BroadcastDropsFailedChannels(t *testing.T) {
	r := NewRegistry()
	teamID := uuid.New()

	good1 := &fakeChannel{}
	good2 := &fakeChannel{}
	bad := &fakeChannel{failSend: true}
	r.RegisterTeamMember(teamID, good1)
	r.RegisterTeamMember(teamID, bad)
	r.RegisterTeamMember(teamID, good2)

	goodAdmin := &fakeChannel{}
	badAdmin := &fakeChannel{failSend: true}
	r.RegisterAdmin(goodAdmin)
	r.RegisterAdmin(badAdmin)

	payload := []byte(`{"event":"ISSUE_UPDATED"}`)
	teamSent, adminSent := r.Broadcast(teamID, payload)

	// Every healthy channel is attempted despite the failures.
	assert.Equal(t, 2, teamSent)
	assert.Equal(t, 1, adminSent)
	assert.Len(t, good1.messages(), 1)
	assert.Len(t, good2.messages(), 1)
	assert.Len(t, goodAdmin.messages(), 1)

	// Failed channels are gone, healthy ones remain.
	assert.Equal(t, 2, r.TeamCount(teamID))
	assert.Equal(t, 1, r.AdminCount())

	// A second broadcast no longer touches the dropped channels.
	teamSent, adminSent = r.Broadcast(teamID, payload)
	assert.Equal(t, 2, teamSent)
	assert.Equal(t, 1, adminSent)
}

func TestRegistry_AdminReceivesAllTeams(t *testing.T) {
	r := NewRegistry()
	team1, team2 := uuid.New(), uuid.New()

	member1 := &fakeChannel{}
	member2 := &fakeChannel{}
	admin := &fakeChannel{}
	r.RegisterTeamMember(team1, member1)
	r.RegisterTeamMember(team2, member2)
	r.RegisterAdmin(admin)

	msg1 := []byte(`{"event":"ISSUE_CREATED","team":"1"}`)
	msg2 := []byte(`{"event":"ISSUE_CREATED","team":"2"}`)
	r.Broadcast(team1, msg1)
	r.Broadcast(team2, msg2)

	// Members see only their own team's traffic.
	require.Len(t, member1.messages(), 1)
	assert.Equal(t, msg1, member1.messages()[0])
	require.Len(t, member2.messages(), 1)
	assert.Equal(t, msg2, member2.messages()[0])

	// The admin sees both.
	require.Len(t, admin.messages(), 2)
	assert.Equal(t, msg1, admin.messages()[0])
	assert.Equal(t, msg2, admin.messages()[1])
}

func TestRegistry_BroadcastNilTeamReachesAdminsOnly(t *testing.T) {
	r := NewRegistry()
	member := &fakeChannel{}
	admin := &fakeChannel{}
	r.RegisterTeamMember(uuid.New(), member)
	r.RegisterAdmin(admin)

	teamSent, adminSent := r.Broadcast(uuid.Nil, []byte(`{"event":"PROJECT_CREATED"}`))
	assert.Equal(t, 0, teamSent)
	assert.Equal(t, 1, adminSent)
	assert.Empty(t, member.messages())
}

func TestRegistry_BroadcastAll(t *testing.T) {
	r := NewRegistry()
	team1, team2 := uuid.New(), uuid.New()

	member1 := &fakeChannel{}
	member2 := &fakeChannel{}
	admin := &fakeChannel{}
	r.RegisterTeamMember(team1, member1)
	r.RegisterTeamMember(team2, member2)
	r.RegisterAdmin(admin)

	payload := []byte(`{"event":"ISSUE_DELETED"}`)
	teamSent, adminSent := r.BroadcastAll(payload)

	assert.Equal(t, 2, teamSent)
	assert.Equal(t, 1, adminSent)
	assert.Len(t, member1.messages(), 1)
	assert.Len(t, member2.messages(), 1)
	assert.Len(t, admin.messages(), 1)
}

func TestRegistry_Shutdown(t *testing.T) {
	r := NewRegistry()
	teamID := uuid.New()
	member := &fakeChannel{}
	admin := &fakeChannel{}
	r.RegisterTeamMember(teamID, member)
	r.RegisterAdmin(admin)

	r.Shutdown()

	assert.True(t, member.closed)
	assert.True(t, admin.closed)
	assert.Equal(t, 0, r.TeamCount(teamID))
	assert.Equal(t, 0, r.AdminCount())
}
