// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ws

import (
	"sync"
)

// GlobalRoom is the reserved room for poll-index events (created, deleted,
// cloned). All other rooms are keyed by poll ID.
const GlobalRoom = "home"

// Conn is an opaque connection handle. The hub is the only component that
// keeps references to connections; everything above it talks in rooms.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Hub tracks which connections belong to which room and fans events out to
// them, fire-and-forget. A connection whose send fails is pruned from the
// room on the spot; there is no keep-alive pass.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[Conn]struct{})}
}

// Join adds a connection to a room, creating the room on first join.
// Re-joining is a no-op.
func (h *Hub) Join(room string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[Conn]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

// Leave removes a connection from a room. The last member leaving discards
// the room's bookkeeping so empty rooms don't accumulate.
func (h *Hub) Leave(room string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast delivers an event to every current member of a room. A failed
// send never blocks or fails delivery to the others; the failing connection
// is treated as gone and removed from the room.
func (h *Hub) Broadcast(room string, event any) {
	h.mu.RLock()
	members := make([]Conn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	var dead []Conn
	for _, c := range members {
		if err := c.WriteJSON(event); err != nil {
			dead = append(dead, c)
		}
	}

	for _, c := range dead {
		h.Leave(room, c)
		_ = c.Close()
	}
}

// Unicast delivers an event to exactly one connection. Failure is silent;
// the connection will be pruned on its next failed broadcast or by its
// disconnect handler.
func (h *Hub) Unicast(c Conn, event any) {
	_ = c.WriteJSON(event)
}

// RoomSize reports a room's current membership.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
