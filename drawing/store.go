package drawing

import (
	"sync"

	"github.com/Husain8570/realtimeCanvas/domain"
)

type state struct {
	history []domain.DrawAction
	undone  []domain.DrawAction
}

// Store holds one drawing log per room. Every keyed operation creates the room's log
// on demand. Undo and redo only ever touch the tail of a log.
type Store struct {
	states map[string]*state
	mu     sync.Mutex
}

func New() *Store {
	return &Store{states: make(map[string]*state)}
}

func (s *Store) get(roomID string) *state {
	st, ok := s.states[roomID]
	if !ok {
		st = &state{}
		s.states[roomID] = st
	}
	return st
}

// Append records a forward action and invalidates redo history.
func (s *Store) Append(roomID string, a domain.DrawAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(roomID)
	st.history = append(st.history, a)
	st.undone = nil
}

func (s *Store) Undo(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(roomID)
	n := len(st.history)
	if n == 0 {
		return false
	}
	st.undone = append(st.undone, st.history[n-1])
	st.history = st.history[:n-1]
	return true
}

func (s *Store) Redo(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(roomID)
	n := len(st.undone)
	if n == 0 {
		return false
	}
	st.history = append(st.history, st.undone[n-1])
	st.undone = st.undone[:n-1]
	return true
}

func (s *Store) Clear(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(roomID)
	st.history = nil
	st.undone = nil
}

// Snapshot returns a copy of the visible history in append order.
func (s *Store) Snapshot(roomID string) []domain.DrawAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.get(roomID).history)
}

// Undone returns a copy of the redo stack, oldest entry first.
func (s *Store) Undone(roomID string) []domain.DrawAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.get(roomID).undone)
}

func (s *Store) Discard(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, roomID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.states)
}

func clone(actions []domain.DrawAction) []domain.DrawAction {
	out := make([]domain.DrawAction, len(actions))
	copy(out, actions)
	return out
}
