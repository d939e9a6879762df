// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ws provides websocket rooms and event fan-out.

# Rooms

Each poll has a room keyed by its poll ID; GlobalRoom ("home") carries
index-level events (poll created, cloned, deleted) for lobby views.

The Hub tracks connections per room and fans events out:

	hub := ws.NewHub()
	hub.Join(pollID, conn)
	hub.Broadcast(pollID, models.NewReadyCounts(ready, total))

A connection that fails a write is dropped from its room and closed;
healthy subscribers are unaffected.

# Endpoints

	GET /ws/polls/{id} → PollSocket (room subscription; answers request_status)
	GET /ws/home       → HomeSocket (lobby subscription)

The Conn interface is the seam between the hub and gorilla/websocket;
tests substitute in-memory connections.
*/
package ws
