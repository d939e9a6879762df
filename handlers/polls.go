// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"themis/middleware"
	"themis/models"
	"themis/session"
	"themis/store"
	"themis/ws"
)

type PollHandler struct {
	store *store.Store
	coord *session.Coordinator
	hub   *ws.Hub
}

func NewPollHandler(st *store.Store, coord *session.Coordinator, hub *ws.Hub) *PollHandler {
	return &PollHandler{store: st, coord: coord, hub: hub}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	// A restricted poll needs a creator to restrict rating to
	if req.CreatorID != nil {
		if _, err := h.store.GetUser(*req.CreatorID); err != nil {
			if errors.Is(err, store.ErrNoRow) {
				middleware.ErrorResponse(w, http.StatusNotFound, "Creator user not found")
				return
			}
			slog.Error("failed to query creator", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	poll, err := h.store.CreatePoll(req.Title, req.CreatorID, req.RestrictedRating)
	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "restricted", poll.RestrictedRating)

	h.hub.Broadcast(ws.GlobalRoom, models.NewPollCreated(poll))

	middleware.JSONResponse(w, http.StatusCreated, poll.Summary())
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPolls()
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out := make([]models.PollResponse, len(polls))
	for i, p := range polls {
		out[i] = p.Summary()
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// DeletePoll handles DELETE /polls/:id
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if err := h.store.DeletePoll(pollID); err != nil {
		if errors.Is(err, store.ErrNoRow) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to delete poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	h.hub.Broadcast(ws.GlobalRoom, models.NewPollDeleted(pollID))

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// ClonePoll handles POST /polls/:id/clone
func (h *PollHandler) ClonePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.ClonePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CreatorID != nil {
		if _, err := h.store.GetUser(*req.CreatorID); err != nil {
			if errors.Is(err, store.ErrNoRow) {
				middleware.ErrorResponse(w, http.StatusNotFound, "Creator user not found")
				return
			}
			slog.Error("failed to query creator", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	clone, err := h.store.ClonePoll(pollID, req.CreatorID)
	if err != nil {
		if errors.Is(err, store.ErrNoRow) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to clone poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clone poll")
		return
	}

	slog.Info("poll cloned", "poll_id", pollID, "clone_id", clone.ID)

	h.hub.Broadcast(ws.GlobalRoom, models.NewPollCloned(clone))

	middleware.JSONResponse(w, http.StatusCreated, clone.Summary())
}

// JoinPoll handles POST /polls/:id/join
func (h *PollHandler) JoinPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.JoinPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	participant, err := h.coord.Join(pollID, req.UserID)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}

	slog.Info("participant joined", "poll_id", pollID, "user_id", req.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.JoinPollResponse{
		ParticipantID: participant.ID,
	})
}

// ListOptions handles GET /polls/:id/options
func (h *PollHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	options, err := h.store.ListOptions(pollID)
	if err != nil {
		slog.Error("failed to list options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out := make([]models.OptionResponse, len(options))
	for i, o := range options {
		out[i] = models.OptionResponse{ID: o.ID, Label: o.Label}
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// AddOption handles POST /polls/:id/options
func (h *PollHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.AddOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Label == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "label is required")
		return
	}

	opt, err := h.coord.AddOption(pollID, req.Label)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}

	slog.Info("option added", "poll_id", pollID, "option_id", opt.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.OptionResponse{
		ID:    opt.ID,
		Label: opt.Label,
	})
}
