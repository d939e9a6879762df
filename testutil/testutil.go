// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"themis/cliparse"
	"themis/db"
	"themis/models"
	"themis/store"
)

// GetTestConfig returns a config suitable for wiring a router in tests.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           8000,
		DatabaseType:   "sqlite",
		AllowedOrigins: []string{"*"},
	}
}

// SetupTestDB opens a throwaway sqlite database with the full schema.
// Each test gets its own file under t.TempDir so tests never share state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "themis_test.db")
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore opens a throwaway database and wraps it in a Store.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// CreateTestUser creates a user and returns its ID.
func CreateTestUser(t *testing.T, st *store.Store, name string) string {
	t.Helper()

	user, err := st.CreateUser(name)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}

// CreateTestPoll creates an unrestricted poll and returns its ID.
func CreateTestPoll(t *testing.T, st *store.Store, title string) string {
	t.Helper()

	poll, err := st.CreatePoll(title, nil, false)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll.ID
}

// CreateRestrictedPoll creates a restricted-rating poll owned by creatorID.
func CreateRestrictedPoll(t *testing.T, st *store.Store, title, creatorID string) string {
	t.Helper()

	poll, err := st.CreatePoll(title, &creatorID, true)
	if err != nil {
		t.Fatalf("Failed to create restricted test poll: %v", err)
	}
	return poll.ID
}

// JoinTestPoll registers a user as a participant.
func JoinTestPoll(t *testing.T, st *store.Store, pollID, userID string) {
	t.Helper()

	if _, err := st.AddParticipant(pollID, userID); err != nil {
		t.Fatalf("Failed to join test poll: %v", err)
	}
}

// AddTestOption adds an option to a poll and returns the option ID.
func AddTestOption(t *testing.T, st *store.Store, pollID, label string) string {
	t.Helper()

	opt, err := st.AddOption(pollID, label)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
	return opt.ID
}

// CastTestVote records a vote directly in the store.
func CastTestVote(t *testing.T, st *store.Store, pollID, optionID, userID string, rating *int, veto bool) {
	t.Helper()

	if err := st.UpsertVote(pollID, optionID, userID, rating, veto); err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// Rating returns a pointer to a rating value, for vote literals in tests.
func Rating(n int) *int {
	return &n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Entries builds a VoteRequest entry list from (optionID, rating) pairs.
func Entries(pairs map[string]int) []models.VoteEntry {
	out := make([]models.VoteEntry, 0, len(pairs))
	for optionID, rating := range pairs {
		r := rating
		out = append(out, models.VoteEntry{OptionID: optionID, Rating: &r})
	}
	return out
}
