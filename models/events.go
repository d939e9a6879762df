// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Websocket event payloads. Every event carries a "type" discriminator so
// clients can switch on it without knowing the room they came from.

// Event type discriminators.
const (
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
	EventOptionAdded       = "option_added"
	EventReadyCounts       = "ready_counts"
	EventReveal            = "reveal"
	EventStatus            = "status"
	EventPollCreated       = "poll_created"
	EventPollDeleted       = "poll_deleted"
	EventPollCloned        = "poll_cloned"
)

// ParticipantEvent announces a join or leave along with the updated
// participant count.
type ParticipantEvent struct {
	Type         string `json:"type"`
	Participants int    `json:"participants"`
}

func NewParticipantJoined(count int) ParticipantEvent {
	return ParticipantEvent{Type: EventParticipantJoined, Participants: count}
}

func NewParticipantLeft(count int) ParticipantEvent {
	return ParticipantEvent{Type: EventParticipantLeft, Participants: count}
}

// OptionAddedEvent announces a newly proposed option.
type OptionAddedEvent struct {
	Type   string         `json:"type"`
	Option OptionResponse `json:"option"`
}

func NewOptionAdded(optionID, label string) OptionAddedEvent {
	return OptionAddedEvent{
		Type:   EventOptionAdded,
		Option: OptionResponse{ID: optionID, Label: label},
	}
}

// ReadyCountsEvent announces the current readiness tally.
type ReadyCountsEvent struct {
	Type         string `json:"type"`
	Ready        int    `json:"ready"`
	Participants int    `json:"participants"`
}

func NewReadyCounts(ready, participants int) ReadyCountsEvent {
	return ReadyCountsEvent{Type: EventReadyCounts, Ready: ready, Participants: participants}
}

// RevealEvent announces the poll's final winner. Sent at most once per poll.
type RevealEvent struct {
	Type   string         `json:"type"`
	Winner OptionResponse `json:"winner"`
}

func NewReveal(winnerID, label string) RevealEvent {
	return RevealEvent{
		Type:   EventReveal,
		Winner: OptionResponse{ID: winnerID, Label: label},
	}
}

// StatusEvent is a unicast snapshot answering a client's request_status frame.
type StatusEvent struct {
	Type         string `json:"type"`
	Participants int    `json:"participants"`
	Ready        int    `json:"ready"`
	OptionCount  int    `json:"optionCount"`
}

func NewStatus(participants, ready, optionCount int) StatusEvent {
	return StatusEvent{
		Type:         EventStatus,
		Participants: participants,
		Ready:        ready,
		OptionCount:  optionCount,
	}
}

// PollEvent announces an index-level change (created/cloned) on the global room.
type PollEvent struct {
	Type string       `json:"type"`
	Poll PollResponse `json:"poll"`
}

func NewPollCreated(poll Poll) PollEvent {
	return PollEvent{Type: EventPollCreated, Poll: poll.Summary()}
}

func NewPollCloned(poll Poll) PollEvent {
	return PollEvent{Type: EventPollCloned, Poll: poll.Summary()}
}

// PollDeletedEvent announces a poll's removal on the global room.
type PollDeletedEvent struct {
	Type   string `json:"type"`
	PollID string `json:"pollId"`
}

func NewPollDeleted(pollID string) PollDeletedEvent {
	return PollDeletedEvent{Type: EventPollDeleted, PollID: pollID}
}
