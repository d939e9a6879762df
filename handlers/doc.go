// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Themis API.

# Handler Types

Each handler is a struct with its dependencies injected at construction:

  - UserHandler: User registration
  - PollHandler: Poll lifecycle (create, list, delete, clone) and room entry
  - VotingHandler: Ballot submission and readiness
  - ResultsHandler: Status snapshots and the explicit reveal

Mutating session operations go through the session.Coordinator rather
than straight to the store, so readiness resets and websocket fan-out
happen in one place:

	pollHandler := handlers.NewPollHandler(st, coord, hub)

# Poll Flow

	POST /polls              → CreatePoll
	POST /polls/{id}/join    → JoinPoll
	POST /polls/{id}/options → AddOption (resets everyone's readiness)
	PUT  /polls/{id}/vote    → SubmitVote (resets the editor's readiness)
	POST /polls/{id}/ready   → MarkReady (may trip the auto-reveal)
	POST /polls/{id}/reveal  → Reveal (requires everyone ready)

# Error Mapping

Coordinator sentinel errors map onto HTTP statuses in errors.go:

	session.ErrNotFound      → 404
	session.ErrForbidden     → 403
	session.ErrInvalidRating → 400
	session.ErrNotAllReady   → 400
	session.ErrNoWinner      → 400

Anything else is a 500 with the detail kept server-side.
*/
package handlers
