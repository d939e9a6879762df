// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"themis/middleware"
	"themis/models"
	"themis/session"
)

type ResultsHandler struct {
	coord *session.Coordinator
}

func NewResultsHandler(coord *session.Coordinator) *ResultsHandler {
	return &ResultsHandler{coord: coord}
}

// GetStatus handles GET /polls/:id/status
func (h *ResultsHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	status, err := h.coord.Status(pollID)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// Reveal handles POST /polls/:id/reveal
func (h *ResultsHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	winner, err := h.coord.ExplicitReveal(pollID)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}

	slog.Info("explicit reveal", "poll_id", pollID, "winner_id", winner.ID)

	middleware.JSONResponse(w, http.StatusOK, models.RevealResponse{
		Winner: models.OptionResponse{ID: winner.ID, Label: winner.Label},
	})
}
