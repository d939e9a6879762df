// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"themis/middleware"
	"themis/session"
)

// writeCoordinatorError maps the coordinator's error taxonomy onto HTTP
// status codes.
func writeCoordinatorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, session.ErrInvalidRating),
		errors.Is(err, session.ErrNotAllReady),
		errors.Is(err, session.ErrNoWinner):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
