// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"themis/models"
)

// ErrNoRow is returned when a requested entity does not exist.
var ErrNoRow = errors.New("store: no such row")

// Store is the durable record store for users, polls, participants, options
// and votes. It owns no concurrency control beyond what the database gives;
// serialization of session-scoped mutations is the coordinator's job.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Users

func (s *Store) CreateUser(name string) (models.User, error) {
	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(`
		INSERT INTO users (id, name, created_at)
		VALUES ($1, $2, $3)
	`, u.ID, u.Name, u.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(`
		SELECT id, name, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNoRow
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// Polls

func (s *Store) CreatePoll(title string, creatorID *string, restricted bool) (models.Poll, error) {
	p := models.Poll{
		ID:               uuid.NewString(),
		Title:            title,
		CreatorID:        creatorID,
		RestrictedRating: restricted,
		CreatedAt:        time.Now().UTC(),
	}
	_, err := s.db.Exec(`
		INSERT INTO polls (id, title, creator_id, restricted_rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Title, p.CreatorID, p.RestrictedRating, p.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("insert poll: %w", err)
	}
	return p, nil
}

func (s *Store) GetPoll(id string) (models.Poll, error) {
	var p models.Poll
	err := s.db.QueryRow(`
		SELECT id, title, creator_id, restricted_rating, winner_id, created_at
		FROM polls WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.CreatorID, &p.RestrictedRating, &p.WinnerID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNoRow
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("query poll: %w", err)
	}
	return p, nil
}

// ListPolls returns every poll, newest first.
func (s *Store) ListPolls() ([]models.Poll, error) {
	rows, err := s.db.Query(`
		SELECT id, title, creator_id, restricted_rating, winner_id, created_at
		FROM polls ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatorID, &p.RestrictedRating, &p.WinnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

// DeletePoll removes a poll; participants, options and votes cascade.
func (s *Store) DeletePoll(id string) error {
	res, err := s.db.Exec(`DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRow
	}
	return nil
}

// ClonePoll creates a fresh poll with the same title, mode and options as the
// source, but no participants, votes or winner.
func (s *Store) ClonePoll(id string, creatorID *string) (models.Poll, error) {
	src, err := s.GetPoll(id)
	if err != nil {
		return models.Poll{}, err
	}

	clone, err := s.CreatePoll(src.Title, creatorID, src.RestrictedRating)
	if err != nil {
		return models.Poll{}, err
	}

	options, err := s.ListOptions(id)
	if err != nil {
		return models.Poll{}, err
	}
	for _, opt := range options {
		if _, err := s.AddOption(clone.ID, opt.Label); err != nil {
			return models.Poll{}, err
		}
	}
	return clone, nil
}

// SetWinnerIfUnset performs the conditional winner write: the winner is set
// only if none is recorded yet. Reports whether this call took the write.
// This single statement is the at-most-one-reveal commit point.
func (s *Store) SetWinnerIfUnset(pollID, optionID string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE polls SET winner_id = $1
		WHERE id = $2 AND winner_id IS NULL
	`, optionID, pollID)
	if err != nil {
		return false, fmt.Errorf("set winner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Participants

// AddParticipant registers a user in a poll. Joining twice is a no-op that
// returns the existing row.
func (s *Store) AddParticipant(pollID, userID string) (models.Participant, error) {
	p := models.Participant{
		ID:     uuid.NewString(),
		PollID: pollID,
		UserID: userID,
	}
	_, err := s.db.Exec(`
		INSERT INTO participants (id, poll_id, user_id, ready)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (poll_id, user_id) DO NOTHING
	`, p.ID, p.PollID, p.UserID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("insert participant: %w", err)
	}
	// Re-read so a lost insert race still yields the surviving row.
	return s.GetParticipant(pollID, userID)
}

func (s *Store) GetParticipant(pollID, userID string) (models.Participant, error) {
	var p models.Participant
	err := s.db.QueryRow(`
		SELECT id, poll_id, user_id, ready
		FROM participants WHERE poll_id = $1 AND user_id = $2
	`, pollID, userID).Scan(&p.ID, &p.PollID, &p.UserID, &p.Ready)
	if err == sql.ErrNoRows {
		return models.Participant{}, ErrNoRow
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("query participant: %w", err)
	}
	return p, nil
}

// ParticipantCounts returns how many participants are ready and how many
// there are in total.
func (s *Store) ParticipantCounts(pollID string) (ready, total int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(CASE WHEN ready THEN 1 END), COUNT(*)
		FROM participants WHERE poll_id = $1
	`, pollID).Scan(&ready, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("count participants: %w", err)
	}
	return ready, total, nil
}

func (s *Store) SetReady(pollID, userID string, ready bool) error {
	res, err := s.db.Exec(`
		UPDATE participants SET ready = $1
		WHERE poll_id = $2 AND user_id = $3
	`, ready, pollID, userID)
	if err != nil {
		return fmt.Errorf("set ready: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRow
	}
	return nil
}

// ResetAllReady clears every participant's ready flag in a poll.
func (s *Store) ResetAllReady(pollID string) error {
	_, err := s.db.Exec(`
		UPDATE participants SET ready = FALSE WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("reset ready: %w", err)
	}
	return nil
}

// Options

func (s *Store) AddOption(pollID, label string) (models.Option, error) {
	o := models.Option{
		ID:        uuid.NewString(),
		PollID:    pollID,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(`
		INSERT INTO options (id, poll_id, label, created_at)
		VALUES ($1, $2, $3, $4)
	`, o.ID, o.PollID, o.Label, o.CreatedAt)
	if err != nil {
		return models.Option{}, fmt.Errorf("insert option: %w", err)
	}
	return o, nil
}

// ListOptions returns a poll's options in creation order.
func (s *Store) ListOptions(pollID string) ([]models.Option, error) {
	rows, err := s.db.Query(`
		SELECT id, poll_id, label, created_at
		FROM options WHERE poll_id = $1 ORDER BY created_at, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.Label, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (s *Store) GetOption(pollID, optionID string) (models.Option, error) {
	var o models.Option
	err := s.db.QueryRow(`
		SELECT id, poll_id, label, created_at
		FROM options WHERE id = $1 AND poll_id = $2
	`, optionID, pollID).Scan(&o.ID, &o.PollID, &o.Label, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Option{}, ErrNoRow
	}
	if err != nil {
		return models.Option{}, fmt.Errorf("query option: %w", err)
	}
	return o, nil
}

func (s *Store) OptionCount(pollID string) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM options WHERE poll_id = $1
	`, pollID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count options: %w", err)
	}
	return n, nil
}

// Votes

// UpsertVote records a user's judgment of an option, replacing any earlier
// one. A veto clears the rating.
func (s *Store) UpsertVote(pollID, optionID, userID string, rating *int, veto bool) error {
	if veto {
		rating = nil
	}
	_, err := s.db.Exec(`
		INSERT INTO votes (id, poll_id, option_id, user_id, rating, veto)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (poll_id, option_id, user_id)
		DO UPDATE SET rating = excluded.rating, veto = excluded.veto
	`, uuid.NewString(), pollID, optionID, userID, toNullInt(rating), veto)
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

// ListVotes returns every vote cast in a poll.
func (s *Store) ListVotes(pollID string) ([]models.Vote, error) {
	rows, err := s.db.Query(`
		SELECT id, poll_id, option_id, user_id, rating, veto
		FROM votes WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var rating sql.NullInt64
		if err := rows.Scan(&v.ID, &v.PollID, &v.OptionID, &v.UserID, &rating, &v.Veto); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			v.Rating = &r
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
