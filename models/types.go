// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreateUserRequest struct {
	Name string `json:"name"`
}

type CreatePollRequest struct {
	Title            string  `json:"title"`
	CreatorID        *string `json:"creator_id,omitempty"`
	RestrictedRating bool    `json:"restricted_rating"`
}

type JoinPollRequest struct {
	UserID string `json:"userId"`
}

type AddOptionRequest struct {
	Label string `json:"label"`
}

// VoteEntry is one option's rating (or veto) within a ballot submission.
// A veto carries no rating; the rating is discarded when veto is set.
type VoteEntry struct {
	OptionID string `json:"optionId"`
	Rating   *int   `json:"rating,omitempty"`
	Veto     bool   `json:"veto"`
}

type VoteRequest struct {
	UserID  string      `json:"userId"`
	Entries []VoteEntry `json:"entries"`
}

type ReadyRequest struct {
	UserID string `json:"userId"`
}

type ClonePollRequest struct {
	CreatorID *string `json:"creator_id,omitempty"`
}

// Response types

type CreateUserResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type PollResponse struct {
	PollID           string  `json:"pollId"`
	Title            string  `json:"title"`
	CreatedAt        string  `json:"created_at"`
	WinnerID         *string `json:"winner_id"`
	CreatorID        *string `json:"creator_id"`
	RestrictedRating bool    `json:"restricted_rating"`
}

type JoinPollResponse struct {
	ParticipantID string `json:"participantId"`
}

type OptionResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type VoteResponse struct {
	OK bool `json:"ok"`
}

type ReadyResponse struct {
	ReadyCount        int `json:"readyCount"`
	TotalParticipants int `json:"totalParticipants"`
}

type StatusResponse struct {
	Title             string          `json:"title"`
	ReadyCount        int             `json:"readyCount"`
	TotalParticipants int             `json:"totalParticipants"`
	OptionCount       int             `json:"optionCount"`
	Winner            *OptionResponse `json:"winner"`
	CreatorID         *string         `json:"creator_id"`
	RestrictedRating  bool            `json:"restricted_rating"`
}

type RevealResponse struct {
	Winner OptionResponse `json:"winner"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Poll struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	CreatorID        *string   `json:"creator_id,omitempty"`
	RestrictedRating bool      `json:"restricted_rating"`
	WinnerID         *string   `json:"winner_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Participant struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	UserID string `json:"user_id"`
	Ready  bool   `json:"ready"`
}

type Option struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// Vote is one user's judgment of one option. Rating is nil when the user
// vetoed the option or has not rated it yet.
type Vote struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
	UserID   string `json:"user_id"`
	Rating   *int   `json:"rating,omitempty"`
	Veto     bool   `json:"veto"`
}

// Summary converts a poll row into its public wire shape.
func (p Poll) Summary() PollResponse {
	return PollResponse{
		PollID:           p.ID,
		Title:            p.Title,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		WinnerID:         p.WinnerID,
		CreatorID:        p.CreatorID,
		RestrictedRating: p.RestrictedRating,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
