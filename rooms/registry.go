package rooms

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/Husain8570/realtimeCanvas/domain"
)

type room struct {
	members map[string]*domain.Participant
	order   []string
}

// Registry tracks which participants belong to which room. The room index and the
// participant index are always updated together.
type Registry struct {
	rooms  map[string]*room
	byUser map[string]string
	mu     sync.RWMutex
}

func New() *Registry {
	return &Registry{
		rooms:  make(map[string]*room),
		byUser: make(map[string]string),
	}
}

// Join adds p to roomID, creating the room if needed. A participant already in another
// room is moved out of it first.
func (r *Registry) Join(roomID string, p domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byUser[p.ID]; ok && prev != roomID {
		r.remove(prev, p.ID)
	}

	rm, exists := r.rooms[roomID]
	if !exists {
		rm = &room{members: make(map[string]*domain.Participant)}
		r.rooms[roomID] = rm
		slog.Debug("room created", "room", roomID)
	}
	if _, ok := rm.members[p.ID]; !ok {
		rm.order = append(rm.order, p.ID)
	}
	rm.members[p.ID] = &p
	r.byUser[p.ID] = roomID

	slog.Info("participant joined", "room", roomID, "clientId", p.ID, "username", p.Username, "participants", len(rm.members))
}

// Leave removes the participant and deletes the room once it is empty.
func (r *Registry) Leave(roomID, participantID string) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.remove(roomID, participantID)
	if ok {
		slog.Info("participant left", "room", roomID, "clientId", participantID, "username", p.Username)
	}
	return p, ok
}

func (r *Registry) remove(roomID, participantID string) (domain.Participant, bool) {
	rm, exists := r.rooms[roomID]
	if !exists {
		return domain.Participant{}, false
	}
	p, ok := rm.members[participantID]
	if !ok {
		return domain.Participant{}, false
	}

	delete(rm.members, participantID)
	rm.order = slices.DeleteFunc(rm.order, func(id string) bool { return id == participantID })
	if r.byUser[participantID] == roomID {
		delete(r.byUser, participantID)
	}

	if len(rm.members) == 0 {
		delete(r.rooms, roomID)
		slog.Info("room removed", "room", roomID)
	}
	return *p, true
}

// MembersOf returns the room's participants in join order, or an empty slice.
func (r *Registry) MembersOf(roomID string) []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, exists := r.rooms[roomID]
	if !exists {
		return []domain.Participant{}
	}
	members := make([]domain.Participant, 0, len(rm.order))
	for _, id := range rm.order {
		members = append(members, *rm.members[id])
	}
	return members
}

func (r *Registry) RoomOf(participantID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomID, ok := r.byUser[participantID]
	return roomID, ok
}

func (r *Registry) UpdateCursor(roomID, participantID string, c domain.Cursor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, exists := r.rooms[roomID]
	if !exists {
		return
	}
	if p, ok := rm.members[participantID]; ok {
		p.Cursor = c
	}
}

func (r *Registry) Stats() (rooms, participants int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms), len(r.byUser)
}
