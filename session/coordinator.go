// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"themis/models"
	"themis/scoring"
	"themis/store"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("only the poll creator can rate in restricted mode")
	ErrInvalidRating = errors.New("rating must be between 0 and 10")
	ErrNotAllReady   = errors.New("not all participants are ready")
	ErrNoWinner      = errors.New("could not compute a winner")
)

// broadcaster is the slice of the hub the coordinator needs: fan an event
// out to one poll's room.
type broadcaster interface {
	Broadcast(room string, event any)
}

// Coordinator serializes session-scoped mutations per poll and guarantees
// that the winner is computed and revealed at most once, no matter how
// ready-marks and explicit reveals race. It never holds one poll's lock
// while touching another poll.
type Coordinator struct {
	store  *store.Store
	hub    broadcaster
	policy scoring.VetoPolicy

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCoordinator(st *store.Store, hub broadcaster) *Coordinator {
	return &Coordinator{
		store:  st,
		hub:    hub,
		policy: scoring.VetoDisqualifies,
		locks:  make(map[string]*sync.Mutex),
	}
}

// lock returns the poll's mutex, creating it on first use. Entries are
// small and polls are short-lived, so they are not reclaimed.
func (c *Coordinator) lock(pollID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[pollID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[pollID] = l
	}
	return l
}

// Join registers a user as a participant and announces the new headcount.
// Joining twice is idempotent and does not re-announce.
func (c *Coordinator) Join(pollID, userID string) (models.Participant, error) {
	l := c.lock(pollID)
	l.Lock()
	defer l.Unlock()

	if _, err := c.store.GetPoll(pollID); err != nil {
		return models.Participant{}, pollErr(err)
	}
	if _, err := c.store.GetUser(userID); err != nil {
		if errors.Is(err, store.ErrNoRow) {
			return models.Participant{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return models.Participant{}, err
	}

	existing, err := c.store.GetParticipant(pollID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNoRow) {
		return models.Participant{}, err
	}

	p, err := c.store.AddParticipant(pollID, userID)
	if err != nil {
		return models.Participant{}, err
	}

	_, total, err := c.store.ParticipantCounts(pollID)
	if err != nil {
		return models.Participant{}, err
	}
	c.hub.Broadcast(pollID, models.NewParticipantJoined(total))

	return p, nil
}

// AddOption creates an option and invalidates everyone's readiness: a new,
// unconsidered option means prior consensus no longer holds. Creation and
// the reset happen under the poll lock so no one observes one without the
// other.
func (c *Coordinator) AddOption(pollID, label string) (models.Option, error) {
	l := c.lock(pollID)
	l.Lock()
	defer l.Unlock()

	if _, err := c.store.GetPoll(pollID); err != nil {
		return models.Option{}, pollErr(err)
	}

	opt, err := c.store.AddOption(pollID, label)
	if err != nil {
		return models.Option{}, err
	}
	if err := c.store.ResetAllReady(pollID); err != nil {
		return models.Option{}, err
	}

	c.hub.Broadcast(pollID, models.NewOptionAdded(opt.ID, opt.Label))

	ready, total, err := c.store.ParticipantCounts(pollID)
	if err != nil {
		return models.Option{}, err
	}
	c.hub.Broadcast(pollID, models.NewReadyCounts(ready, total))

	return opt, nil
}

// SubmitVotes upserts a batch of vote entries for one user and resets only
// that user's ready flag; co-participants already weighed everything they
// needed to under the current option set. Entries naming unknown options
// are skipped. Once the poll is revealed the submission is a no-op.
func (c *Coordinator) SubmitVotes(pollID, userID string, entries []models.VoteEntry) error {
	l := c.lock(pollID)
	l.Lock()
	defer l.Unlock()

	poll, err := c.store.GetPoll(pollID)
	if err != nil {
		return pollErr(err)
	}

	if _, err := c.store.GetParticipant(pollID, userID); err != nil {
		if errors.Is(err, store.ErrNoRow) {
			return fmt.Errorf("user %s is not a participant: %w", userID, ErrNotFound)
		}
		return err
	}

	if poll.RestrictedRating && (poll.CreatorID == nil || *poll.CreatorID != userID) {
		return ErrForbidden
	}

	for _, e := range entries {
		if e.Rating != nil && (*e.Rating < 0 || *e.Rating > 10) {
			return ErrInvalidRating
		}
	}

	// Reveal is terminal: the winner is fixed, so late edits change nothing.
	if poll.WinnerID != nil {
		return nil
	}

	for _, e := range entries {
		if _, err := c.store.GetOption(pollID, e.OptionID); err != nil {
			if errors.Is(err, store.ErrNoRow) {
				continue
			}
			return err
		}
		if err := c.store.UpsertVote(pollID, e.OptionID, userID, e.Rating, e.Veto); err != nil {
			return err
		}
	}

	if err := c.store.SetReady(pollID, userID, false); err != nil {
		return err
	}

	ready, total, err := c.store.ParticipantCounts(pollID)
	if err != nil {
		return err
	}
	c.hub.Broadcast(pollID, models.NewReadyCounts(ready, total))

	return nil
}

// MarkReady flags a participant as ready, announces the new tally, and
// auto-reveals when everyone is ready.
func (c *Coordinator) MarkReady(pollID, userID string) (ready, total int, err error) {
	l := c.lock(pollID)
	l.Lock()
	defer l.Unlock()

	if err := c.store.SetReady(pollID, userID, true); err != nil {
		if errors.Is(err, store.ErrNoRow) {
			return 0, 0, fmt.Errorf("participant %s: %w", userID, ErrNotFound)
		}
		return 0, 0, err
	}

	ready, total, err = c.store.ParticipantCounts(pollID)
	if err != nil {
		return 0, 0, err
	}
	c.hub.Broadcast(pollID, models.NewReadyCounts(ready, total))

	if ready >= total && total > 0 {
		if err := c.checkAutoReveal(pollID); err != nil {
			return 0, 0, err
		}
	}

	return ready, total, nil
}

// checkAutoReveal runs the reveal path opportunistically. A poll that is
// already revealed, or whose votes yield no winner, is left untouched.
// Caller must hold the poll lock.
func (c *Coordinator) checkAutoReveal(pollID string) error {
	poll, err := c.store.GetPoll(pollID)
	if err != nil {
		return pollErr(err)
	}
	if poll.WinnerID != nil {
		return nil
	}

	winnerID, ok, err := c.computeWinner(pollID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	return c.commitReveal(pollID, winnerID)
}

// ExplicitReveal computes and publishes the winner on demand. An already
// revealed poll returns its winner without a second event; a poll whose
// participants are not all ready refuses.
func (c *Coordinator) ExplicitReveal(pollID string) (models.Option, error) {
	l := c.lock(pollID)
	l.Lock()
	defer l.Unlock()

	poll, err := c.store.GetPoll(pollID)
	if err != nil {
		return models.Option{}, pollErr(err)
	}
	if poll.WinnerID != nil {
		return c.store.GetOption(pollID, *poll.WinnerID)
	}

	ready, total, err := c.store.ParticipantCounts(pollID)
	if err != nil {
		return models.Option{}, err
	}
	if total == 0 || ready < total {
		return models.Option{}, ErrNotAllReady
	}

	winnerID, ok, err := c.computeWinner(pollID)
	if err != nil {
		return models.Option{}, err
	}
	if !ok {
		return models.Option{}, ErrNoWinner
	}

	if err := c.commitReveal(pollID, winnerID); err != nil {
		return models.Option{}, err
	}
	return c.store.GetOption(pollID, winnerID)
}

func (c *Coordinator) computeWinner(pollID string) (string, bool, error) {
	options, err := c.store.ListOptions(pollID)
	if err != nil {
		return "", false, err
	}
	votes, err := c.store.ListVotes(pollID)
	if err != nil {
		return "", false, err
	}
	winnerID, ok := scoring.Winner(pollID, options, votes, c.policy)
	return winnerID, ok, nil
}

// commitReveal writes the winner conditionally and broadcasts the reveal
// only if this call won the write. The loser of a race observes that a
// winner already exists and emits nothing.
func (c *Coordinator) commitReveal(pollID, winnerID string) error {
	took, err := c.store.SetWinnerIfUnset(pollID, winnerID)
	if err != nil {
		return err
	}
	if !took {
		return nil
	}

	opt, err := c.store.GetOption(pollID, winnerID)
	if err != nil {
		return err
	}

	slog.Info("winner revealed", "poll_id", pollID, "option_id", winnerID)
	c.hub.Broadcast(pollID, models.NewReveal(opt.ID, opt.Label))
	return nil
}

// Status reports a poll's readiness and outcome snapshot.
func (c *Coordinator) Status(pollID string) (models.StatusResponse, error) {
	poll, err := c.store.GetPoll(pollID)
	if err != nil {
		return models.StatusResponse{}, pollErr(err)
	}

	ready, total, err := c.store.ParticipantCounts(pollID)
	if err != nil {
		return models.StatusResponse{}, err
	}
	optionCount, err := c.store.OptionCount(pollID)
	if err != nil {
		return models.StatusResponse{}, err
	}

	st := models.StatusResponse{
		Title:             poll.Title,
		ReadyCount:        ready,
		TotalParticipants: total,
		OptionCount:       optionCount,
		CreatorID:         poll.CreatorID,
		RestrictedRating:  poll.RestrictedRating,
	}
	if poll.WinnerID != nil {
		opt, err := c.store.GetOption(pollID, *poll.WinnerID)
		if err == nil {
			st.Winner = &models.OptionResponse{ID: opt.ID, Label: opt.Label}
		}
	}
	return st, nil
}

// Disconnected announces a subscriber's departure with the current
// headcount. Driven by the transport layer when a connection drops.
func (c *Coordinator) Disconnected(pollID string) {
	_, total, err := c.store.ParticipantCounts(pollID)
	if err != nil {
		slog.Error("failed to count participants after disconnect", "poll_id", pollID, "error", err)
		return
	}
	c.hub.Broadcast(pollID, models.NewParticipantLeft(total))
}

func pollErr(err error) error {
	if errors.Is(err, store.ErrNoRow) {
		return fmt.Errorf("poll: %w", ErrNotFound)
	}
	return err
}
