package websocket

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Hub tracks live heartbeat connections per employee. An employee may hold
// several sockets (multiple tabs/devices); they only go offline when the
// last one closes.
type Hub struct {
	connections map[uuid.UUID]int
	mu          sync.Mutex

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	ConnectedEmployees int   `json:"connected_employees"`
	TotalConnections   int64 `json:"total_connections"`
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]int),
	}
}

// Register adds a socket for the employee and reports whether it is their
// first live connection.
func (h *Hub) Register(employeeID uuid.UUID) bool {
	h.mu.Lock()
	h.connections[employeeID]++
	first := h.connections[employeeID] == 1
	h.mu.Unlock()

	h.statsMu.Lock()
	h.stats.TotalConnections++
	h.statsMu.Unlock()

	log.Info().Str("employeeID", employeeID.String()).Bool("first", first).Msg("ws: presence client registered")
	return first
}

// Unregister drops a socket and reports whether it was the employee's last
// live connection.
func (h *Hub) Unregister(employeeID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[employeeID]--
	if h.connections[employeeID] <= 0 {
		delete(h.connections, employeeID)
		log.Info().Str("employeeID", employeeID.String()).Msg("ws: presence client unregistered, employee offline")
		return true
	}
	return false
}

func (h *Hub) Stats() HubStats {
	h.statsMu.RLock()
	defer h.statsMu.RUnlock()

	h.mu.Lock()
	connected := len(h.connections)
	h.mu.Unlock()

	stats := h.stats
	stats.ConnectedEmployees = connected
	return stats
}
