// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Themis API server.

Themis is a real-time collaborative rating service: a group gathers in a
poll room, proposes options, rates each on a 0-10 scale (or vetoes), and
when everyone declares themselves ready the harmonic-mean winner is
revealed to the whole room at once.

# Starting the Server

The server runs against a local sqlite file out of the box:

	go run main.go

Or against PostgreSQL:

	go run main.go -t postgres -d "postgres://..."

# Configuration

Optional settings (flags or environment):

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)
  - ALLOWED_ORIGINS (-origins): CORS allowlist (default: http://localhost:5173)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, polls, voting, results)
  - session: Per-poll coordination, readiness and the reveal
  - scoring: Harmonic-mean ranking with deterministic tie-breaks
  - ws: Websocket rooms and event fan-out
  - store: Persistence over database/sql
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and event payloads
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
