// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"themis/cliparse"
	"themis/handlers"
	"themis/middleware"
	"themis/session"
	"themis/store"
	"themis/ws"
)

func NewRouter(st *store.Store, coord *session.Coordinator, hub *ws.Hub, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(st)
	pollHandler := handlers.NewPollHandler(st, coord, hub)
	votingHandler := handlers.NewVotingHandler(coord)
	resultsHandler := handlers.NewResultsHandler(coord)
	wsHandler := ws.NewHandler(hub, coord, cfg.AllowedOrigins)

	// Health check
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Users
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.CreateUser))

	// Poll lifecycle
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))
	mux.HandleFunc("POST /polls/{id}/clone", middleware.WithLogging(pollHandler.ClonePoll))

	// Session operations
	mux.HandleFunc("POST /polls/{id}/join", middleware.WithLogging(pollHandler.JoinPoll))
	mux.HandleFunc("GET /polls/{id}/options", middleware.WithLogging(pollHandler.ListOptions))
	mux.HandleFunc("POST /polls/{id}/options", middleware.WithLogging(pollHandler.AddOption))
	mux.HandleFunc("PUT /polls/{id}/vote", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("POST /polls/{id}/ready", middleware.WithLogging(votingHandler.MarkReady))
	mux.HandleFunc("GET /polls/{id}/status", middleware.WithLogging(resultsHandler.GetStatus))
	mux.HandleFunc("POST /polls/{id}/reveal", middleware.WithLogging(resultsHandler.Reveal))

	// Live subscriptions
	mux.HandleFunc("GET /ws/home", wsHandler.HomeSocket)
	mux.HandleFunc("GET /ws/polls/{id}", wsHandler.PollSocket)

	return middleware.CORS(cfg.AllowedOrigins, mux)
}
