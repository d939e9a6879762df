// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain and event types.

# Request Types

Types for parsing incoming JSON:

  - CreateUserRequest: name
  - CreatePollRequest: title, creator_id, restricted_rating
  - JoinPollRequest: userId
  - AddOptionRequest: label
  - VoteRequest: userId, entries ([]VoteEntry)
  - ReadyRequest: userId
  - ClonePollRequest: creator_id

# Response Types

Types for JSON responses:

  - CreateUserResponse, PollResponse, JoinPollResponse
  - OptionResponse, VoteResponse, ReadyResponse
  - StatusResponse, RevealResponse
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User, Poll, Participant, Option, Vote

A Vote's Rating is a *int: nil means vetoed or not yet rated.

# Events

Websocket payloads in events.go, each with a "type" discriminator:

	participant_joined, participant_left, option_added, ready_counts,
	reveal, status, poll_created, poll_cloned, poll_deleted

Constructors (NewReveal, NewReadyCounts, ...) keep the discriminator
strings in one place.
*/
package models
