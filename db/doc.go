// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: Registered users
  - polls: Poll metadata, restricted flag and the winner once revealed
  - participants: Room membership with the ready flag
  - options: Proposed options per poll
  - votes: One row per (poll, option, user); rating 0-10 or a veto

# Relationships

	users 1──* polls (creator)
	polls 1──* participants
	polls 1──* options
	polls 1──* votes

All foreign keys use ON DELETE CASCADE, so deleting a poll removes its
participants, options and votes in one statement.
*/
package db
