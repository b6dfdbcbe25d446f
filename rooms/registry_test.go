package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Husain8570/realtimeCanvas/domain"
)

func participant(id string) domain.Participant {
	return domain.Participant{ID: id, Username: "user-" + id, Color: "#000000"}
}

func ids(ps []domain.Participant) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestRegistry_Join(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*Registry)
		room        string
		wantMembers []string
	}{
		{
			name:        "creates room on first join",
			setup:       func(r *Registry) { r.Join("r1", participant("a")) },
			room:        "r1",
			wantMembers: []string{"a"},
		},
		{
			name: "keeps join order",
			setup: func(r *Registry) {
				r.Join("r1", participant("b"))
				r.Join("r1", participant("a"))
				r.Join("r1", participant("c"))
			},
			room:        "r1",
			wantMembers: []string{"b", "a", "c"},
		},
		{
			name: "join is idempotent per identity",
			setup: func(r *Registry) {
				r.Join("r1", participant("a"))
				r.Join("r1", participant("a"))
			},
			room:        "r1",
			wantMembers: []string{"a"},
		},
		{
			name: "participant moves between rooms",
			setup: func(r *Registry) {
				r.Join("r1", participant("a"))
				r.Join("r1", participant("b"))
				r.Join("r2", participant("a"))
			},
			room:        "r1",
			wantMembers: []string{"b"},
		},
		{
			name:        "unknown room is empty",
			setup:       func(r *Registry) {},
			room:        "missing",
			wantMembers: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			tt.setup(r)
			assert.Equal(t, tt.wantMembers, ids(r.MembersOf(tt.room)))
		})
	}
}

func TestRegistry_LeaveRemovesEmptyRoom(t *testing.T) {
	r := New()
	r.Join("r1", participant("a"))
	r.Join("r1", participant("b"))

	p, ok := r.Leave("r1", "a")
	require.True(t, ok)
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, "user-a", p.Username)

	rooms, participants := r.Stats()
	assert.Equal(t, 1, rooms)
	assert.Equal(t, 1, participants)

	_, ok = r.Leave("r1", "b")
	require.True(t, ok)

	rooms, participants = r.Stats()
	assert.Equal(t, 0, rooms)
	assert.Equal(t, 0, participants)
	assert.Empty(t, r.MembersOf("r1"))

	_, ok = r.RoomOf("b")
	assert.False(t, ok)
}

func TestRegistry_LeaveAbsent(t *testing.T) {
	r := New()
	r.Join("r1", participant("a"))

	_, ok := r.Leave("r2", "a")
	assert.False(t, ok)

	_, ok = r.Leave("r1", "zzz")
	assert.False(t, ok)

	roomID, ok := r.RoomOf("a")
	require.True(t, ok)
	assert.Equal(t, "r1", roomID)
}

func TestRegistry_RoomOf(t *testing.T) {
	r := New()
	r.Join("r1", participant("a"))
	r.Join("r2", participant("b"))

	roomID, ok := r.RoomOf("b")
	require.True(t, ok)
	assert.Equal(t, "r2", roomID)

	_, ok = r.RoomOf("nobody")
	assert.False(t, ok)
}

func TestRegistry_UpdateCursor(t *testing.T) {
	r := New()
	r.Join("r1", participant("a"))

	r.UpdateCursor("r1", "a", domain.Cursor{X: 10, Y: 20})
	r.UpdateCursor("r1", "ghost", domain.Cursor{X: 1, Y: 1})
	r.UpdateCursor("r9", "a", domain.Cursor{X: 5, Y: 5})

	members := r.MembersOf("r1")
	require.Len(t, members, 1)
	assert.Equal(t, domain.Cursor{X: 10, Y: 20}, members[0].Cursor)

	rooms, participants := r.Stats()
	assert.Equal(t, 1, rooms)
	assert.Equal(t, 1, participants)
}

func TestRegistry_MembersOfReturnsCopies(t *testing.T) {
	r := New()
	r.Join("r1", participant("a"))

	members := r.MembersOf("r1")
	members[0].Username = "changed"

	assert.Equal(t, "user-a", r.MembersOf("r1")[0].Username)
}
