// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"themis/middleware"
	"themis/models"
	"themis/session"
)

type VotingHandler struct {
	coord *session.Coordinator
}

func NewVotingHandler(coord *session.Coordinator) *VotingHandler {
	return &VotingHandler{coord: coord}
}

// SubmitVote handles PUT /polls/:id/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.coord.SubmitVotes(pollID, req.UserID, req.Entries); err != nil {
		writeCoordinatorError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{OK: true})
}

// MarkReady handles POST /polls/:id/ready
func (h *VotingHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.ReadyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	ready, total, err := h.coord.MarkReady(pollID, req.UserID)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReadyResponse{
		ReadyCount:        ready,
		TotalParticipants: total,
	})
}
