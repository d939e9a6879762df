// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session coordinates the live phase of a poll: who is in the room,
who has declared themselves ready, and the single moment the winner is
revealed.

# Coordinator

The Coordinator serializes mutations per poll with a per-poll mutex, so
two polls never contend with each other:

	coord := session.NewCoordinator(st, hub)
	coord.Join(pollID, userID)
	coord.SubmitVotes(pollID, userID, entries)
	coord.MarkReady(pollID, userID)

# Readiness

Readiness is a declaration that a participant's ballot is final. It is
withdrawn automatically whenever the decision input changes:

  - AddOption resets every participant's ready flag
  - SubmitVotes resets only the editor's ready flag

Every change broadcasts a ready_counts event to the poll room.

# The Reveal

When the last participant marks ready, the winner is computed and
published in the same critical section. The commit point is a
conditional winner write in the store; whichever caller takes that
write broadcasts the reveal event, so the room sees it exactly once.
ExplicitReveal offers the same result on demand once everyone is ready,
and is idempotent afterwards.
*/
package session
