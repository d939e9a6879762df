// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer over database/sql.

All statements are written to run identically on sqlite and PostgreSQL:
$n placeholders, ON CONFLICT upserts, explicit UTC timestamps from Go.

# Notable Operations

  - AddParticipant: idempotent per (poll, user) via ON CONFLICT DO NOTHING
  - UpsertVote: one row per (poll, option, user); a veto clears the rating
  - SetWinnerIfUnset: the conditional write that makes the reveal
    happen at most once, reporting whether this caller took it

Missing rows surface as ErrNoRow so callers can branch with errors.Is.
*/
package store
