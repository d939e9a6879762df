// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"themis/models"
	"themis/session"
)

// clientFrame is the only message shape clients may send; everything else
// is ignored.
type clientFrame struct {
	Type string `json:"type"`
}

// socket wraps a gorilla connection with a write lock, since broadcasts and
// unicasts may target the same connection from different goroutines.
type socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socket) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *socket) Close() error {
	return s.conn.Close()
}

// Handler upgrades HTTP requests into hub subscriptions.
type Handler struct {
	hub      *Hub
	coord    *session.Coordinator
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, coord *session.Coordinator, allowedOrigins []string) *Handler {
	return &Handler{
		hub:   hub,
		coord: coord,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// PollSocket handles GET /ws/polls/{id}: subscribe to one poll's room and
// answer request_status frames with a unicast snapshot. A read error is the
// disconnect signal: leave the room and announce the departure.
func (h *Handler) PollSocket(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		http.Error(w, "poll id is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "poll_id", pollID, "error", err)
		return
	}

	c := &socket{conn: conn}
	h.hub.Join(pollID, c)
	slog.Info("subscriber joined", "poll_id", pollID)

	defer func() {
		h.hub.Leave(pollID, c)
		_ = c.Close()
		h.coord.Disconnected(pollID)
		slog.Info("subscriber left", "poll_id", pollID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue // ignore invalid JSON
		}
		if frame.Type != "request_status" {
			continue
		}

		st, err := h.coord.Status(pollID)
		if err != nil {
			continue
		}
		h.hub.Unicast(c, models.NewStatus(st.TotalParticipants, st.ReadyCount, st.OptionCount))
	}
}

// HomeSocket handles GET /ws/home: subscribe to the global poll-index room.
// The connection is broadcast-only; client frames are drained and ignored.
func (h *Handler) HomeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "room", GlobalRoom, "error", err)
		return
	}

	c := &socket{conn: conn}
	h.hub.Join(GlobalRoom, c)

	defer func() {
		h.hub.Leave(GlobalRoom, c)
		_ = c.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
