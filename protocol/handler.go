package protocol

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Pallinder/go-randomdata"

	"github.com/Husain8570/realtimeCanvas/domain"
	"github.com/Husain8570/realtimeCanvas/drawing"
	"github.com/Husain8570/realtimeCanvas/rooms"
)

const (
	DefaultRoom = "default"

	maxRoomIDLen   = 100
	maxUsernameLen = 50
)

// Handler is the event relay. It applies inbound events to the room registry and the
// drawing logs, then fans the results out through the gateway. Everything that reads
// or mutates one room runs under that room's lock.
type Handler struct {
	gateway  domain.Gateway
	rooms    *rooms.Registry
	drawings *drawing.Store
	locks    *roomLocks
}

func NewHandler(g domain.Gateway, r *rooms.Registry, d *drawing.Store) *Handler {
	return &Handler{
		gateway:  g,
		rooms:    r,
		drawings: d,
		locks:    newRoomLocks(),
	}
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	ev, err := decode(data)
	if err != nil {
		slog.Warn("invalid message", "clientId", conn.ID(), "error", err)
		return
	}

	switch e := ev.(type) {
	case joinEvent:
		h.join(conn.ID(), e.req)
	case drawEvent:
		h.draw(conn.ID(), e.action)
	case undoEvent:
		h.undo(conn.ID())
	case redoEvent:
		h.redo(conn.ID())
	case clearEvent:
		h.clear(conn.ID())
	case cursorEvent:
		h.cursorMove(conn.ID(), e.pos)
	case pingEvent:
		h.send(conn.ID(), domain.EventPong, domain.Ping{Timestamp: e.timestamp, ClientID: conn.ID()})
	}
}

// Disconnect removes the connection from its room, if it joined one, and tells the
// remaining members. The last member leaving discards the room's drawing.
func (h *Handler) Disconnect(conn domain.Connection) {
	h.withRoom(conn.ID(), func(roomID string) {
		if _, ok := h.rooms.Leave(roomID, conn.ID()); !ok {
			return
		}
		users := h.rooms.MembersOf(roomID)
		if len(users) == 0 {
			h.drawings.Discard(roomID)
			return
		}
		h.broadcast(roomID, conn.ID(), domain.EventUserLeft, domain.UserLeft{UserID: conn.ID(), Users: users})
	})
}

func (h *Handler) join(connID string, req domain.JoinRoom) {
	if roomID, joined := h.rooms.RoomOf(connID); joined {
		slog.Debug("join ignored, already in a room", "clientId", connID, "room", roomID)
		return
	}

	roomID := truncate(strings.TrimSpace(req.RoomID), maxRoomIDLen)
	if roomID == "" {
		roomID = DefaultRoom
	}
	p := newParticipant(connID, req)

	unlock := h.locks.lock(roomID)
	defer unlock()

	h.rooms.Join(roomID, p)
	users := h.rooms.MembersOf(roomID)

	h.send(connID, domain.EventInitState, domain.InitState{
		DrawingHistory: h.drawings.Snapshot(roomID),
		Users:          users,
	})
	h.broadcast(roomID, connID, domain.EventUserJoined, domain.UserJoined{User: p, Users: users})
}

func (h *Handler) draw(connID string, action domain.DrawAction) {
	h.withRoom(connID, func(roomID string) {
		h.drawings.Append(roomID, action)
		h.broadcast(roomID, connID, domain.EventDraw, action)
	})
}

func (h *Handler) undo(connID string) {
	h.withRoom(connID, func(roomID string) {
		if h.drawings.Undo(roomID) {
			h.broadcast(roomID, "", domain.EventUndo, nil)
		}
	})
}

func (h *Handler) redo(connID string) {
	h.withRoom(connID, func(roomID string) {
		if h.drawings.Redo(roomID) {
			h.broadcast(roomID, "", domain.EventRedo, nil)
		}
	})
}

func (h *Handler) clear(connID string) {
	h.withRoom(connID, func(roomID string) {
		h.drawings.Clear(roomID)
		h.broadcast(roomID, "", domain.EventClearCanvas, nil)
	})
}

func (h *Handler) cursorMove(connID string, pos domain.Cursor) {
	h.withRoom(connID, func(roomID string) {
		h.rooms.UpdateCursor(roomID, connID, pos)
		h.broadcast(roomID, connID, domain.EventCursorMove, domain.CursorMove{UserID: connID, X: pos.X, Y: pos.Y})
	})
}

// withRoom runs fn under the lock of the room connID belongs to. Connections that have
// not joined a room are ignored.
func (h *Handler) withRoom(connID string, fn func(roomID string)) {
	roomID, ok := h.rooms.RoomOf(connID)
	if !ok {
		slog.Debug("event dropped, client not in a room", "clientId", connID)
		return
	}

	unlock := h.locks.lock(roomID)
	defer unlock()

	if current, ok := h.rooms.RoomOf(connID); !ok || current != roomID {
		slog.Debug("event dropped, room changed", "clientId", connID, "room", roomID)
		return
	}
	fn(roomID)
}

// broadcast sends to every member of roomID except the connection named by except.
// An empty except reaches the whole room.
func (h *Handler) broadcast(roomID, except string, t domain.EventType, payload any) {
	data, err := encode(t, payload)
	if err != nil {
		slog.Warn("marshal error", "room", roomID, "type", t, "error", err)
		return
	}
	for _, p := range h.rooms.MembersOf(roomID) {
		if p.ID == except {
			continue
		}
		h.gateway.Send(p.ID, data)
	}
}

func (h *Handler) send(connID string, t domain.EventType, payload any) {
	data, err := encode(t, payload)
	if err != nil {
		slog.Warn("marshal error", "clientId", connID, "type", t, "error", err)
		return
	}
	h.gateway.Send(connID, data)
}

func newParticipant(connID string, req domain.JoinRoom) domain.Participant {
	username := truncate(strings.TrimSpace(req.Username), maxUsernameLen)
	if username == "" {
		username = fmt.Sprintf("User%d", randomdata.Number(1000))
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = fmt.Sprintf("#%06x", randomdata.Number(0x1000000))
	}
	return domain.Participant{ID: connID, Username: username, Color: color}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
