package hub

import (
	"log/slog"
	"sync"

	"github.com/Husain8570/realtimeCanvas/domain"
)

// Hub is the connection gateway: it owns every live connection and delivers outbound
// frames to them by id.
type Hub struct {
	conns map[string]domain.Connection
	mu    sync.RWMutex
}

func New() *Hub {
	return &Hub{
		conns: make(map[string]domain.Connection),
	}
}

func (h *Hub) Register(conn domain.Connection) {
	h.mu.Lock()
	h.conns[conn.ID()] = conn
	count := len(h.conns)
	h.mu.Unlock()

	slog.Info("client connected", "clientId", conn.ID(), "clients", count)
}

func (h *Hub) Unregister(conn domain.Connection) {
	h.mu.Lock()
	current, exists := h.conns[conn.ID()]
	if exists && current == conn {
		delete(h.conns, conn.ID())
	}
	count := len(h.conns)
	h.mu.Unlock()

	if exists {
		slog.Info("client disconnected", "clientId", conn.ID(), "clients", count)
	}
}

// Send queues data for connID. It never blocks; a connection that cannot take the
// frame is closed so its read loop reports the disconnect.
func (h *Hub) Send(connID string, data []byte) {
	h.mu.RLock()
	conn, exists := h.conns[connID]
	h.mu.RUnlock()

	if !exists {
		return
	}
	if err := conn.Send(data); err != nil {
		slog.Warn("send failed, dropping client", "clientId", connID, "error", err)
		go func(c domain.Connection) {
			if err := c.Close(); err != nil {
				slog.Debug("close error", "clientId", c.ID(), "error", err)
			}
		}(conn)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}
