// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Themis API.

# Route Registration

NewRouter creates a configured handler with all endpoints:

	mux := router.NewRouter(st, coord, hub, cfg)

# Endpoints

Health:

	GET /healthz

Users:

	POST /users - Register a user

Poll lifecycle:

	GET    /polls            - List polls
	POST   /polls            - Create poll
	DELETE /polls/{id}       - Delete poll
	POST   /polls/{id}/clone - Clone options into a fresh poll

Session operations:

	POST /polls/{id}/join    - Enter the room
	GET  /polls/{id}/options - List options
	POST /polls/{id}/options - Propose an option
	PUT  /polls/{id}/vote    - Submit/update a ballot
	POST /polls/{id}/ready   - Declare readiness
	GET  /polls/{id}/status  - Snapshot
	POST /polls/{id}/reveal  - Explicit reveal

Live subscriptions:

	GET /ws/home       - Lobby events
	GET /ws/polls/{id} - Room events

The whole mux is wrapped in middleware.CORS with the configured origin
allowlist.
*/
package router
