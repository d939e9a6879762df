// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"errors"
	"testing"

	"themis/store"
	"themis/testutil"
)

func TestAddParticipant_IdempotentPerUser(t *testing.T) {
	st := testutil.SetupTestStore(t)

	userID := testutil.CreateTestUser(t, st, "Ada")
	pollID := testutil.CreateTestPoll(t, st, "Dinner")

	first, err := st.AddParticipant(pollID, userID)
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	second, err := st.AddParticipant(pollID, userID)
	if err != nil {
		t.Fatalf("Second AddParticipant failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Expected one participant row per (poll,user), got %s and %s", first.ID, second.ID)
	}

	_, total, err := st.ParticipantCounts(pollID)
	if err != nil {
		t.Fatalf("ParticipantCounts failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 participant, got %d", total)
	}
}

func TestUpsertVote_OneRowPerTriple(t *testing.T) {
	st := testutil.SetupTestStore(t)

	userID := testutil.CreateTestUser(t, st, "Ada")
	pollID := testutil.CreateTestPoll(t, st, "Dinner")
	optID := testutil.AddTestOption(t, st, pollID, "Sushi")

	if err := st.UpsertVote(pollID, optID, userID, testutil.Rating(3), false); err != nil {
		t.Fatalf("UpsertVote failed: %v", err)
	}
	if err := st.UpsertVote(pollID, optID, userID, testutil.Rating(9), false); err != nil {
		t.Fatalf("Second UpsertVote failed: %v", err)
	}

	votes, err := st.ListVotes(pollID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected one vote row, got %d", len(votes))
	}
	if votes[0].Rating == nil || *votes[0].Rating != 9 {
		t.Errorf("Expected updated rating 9, got %v", votes[0].Rating)
	}
}

func TestUpsertVote_VetoClearsRating(t *testing.T) {
	st := testutil.SetupTestStore(t)

	userID := testutil.CreateTestUser(t, st, "Ada")
	pollID := testutil.CreateTestPoll(t, st, "Dinner")
	optID := testutil.AddTestOption(t, st, pollID, "Sushi")

	if err := st.UpsertVote(pollID, optID, userID, testutil.Rating(8), false); err != nil {
		t.Fatalf("UpsertVote failed: %v", err)
	}
	// Vetoing with a rating attached: the rating must be discarded.
	if err := st.UpsertVote(pollID, optID, userID, testutil.Rating(8), true); err != nil {
		t.Fatalf("Veto upsert failed: %v", err)
	}

	votes, err := st.ListVotes(pollID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected one vote row, got %d", len(votes))
	}
	if !votes[0].Veto {
		t.Error("Expected veto flag set")
	}
	if votes[0].Rating != nil {
		t.Errorf("Expected vetoing vote to carry no rating, got %v", *votes[0].Rating)
	}
}

func TestSetWinnerIfUnset_FirstWriterWins(t *testing.T) {
	st := testutil.SetupTestStore(t)

	pollID := testutil.CreateTestPoll(t, st, "Dinner")
	optA := testutil.AddTestOption(t, st, pollID, "Sushi")
	optB := testutil.AddTestOption(t, st, pollID, "Tacos")

	took, err := st.SetWinnerIfUnset(pollID, optA)
	if err != nil {
		t.Fatalf("SetWinnerIfUnset failed: %v", err)
	}
	if !took {
		t.Fatal("Expected first conditional write to take effect")
	}

	took, err = st.SetWinnerIfUnset(pollID, optB)
	if err != nil {
		t.Fatalf("Second SetWinnerIfUnset failed: %v", err)
	}
	if took {
		t.Error("Expected second conditional write to be discarded")
	}

	poll, err := st.GetPoll(pollID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if poll.WinnerID == nil || *poll.WinnerID != optA {
		t.Errorf("Expected winner %s to stick, got %v", optA, poll.WinnerID)
	}
}

func TestDeletePoll_Cascades(t *testing.T) {
	st := testutil.SetupTestStore(t)

	userID := testutil.CreateTestUser(t, st, "Ada")
	pollID := testutil.CreateTestPoll(t, st, "Dinner")
	testutil.JoinTestPoll(t, st, pollID, userID)
	optID := testutil.AddTestOption(t, st, pollID, "Sushi")
	testutil.CastTestVote(t, st, pollID, optID, userID, testutil.Rating(5), false)

	if err := st.DeletePoll(pollID); err != nil {
		t.Fatalf("DeletePoll failed: %v", err)
	}

	if _, err := st.GetPoll(pollID); !errors.Is(err, store.ErrNoRow) {
		t.Errorf("Expected poll gone, got %v", err)
	}
	votes, err := st.ListVotes(pollID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("Expected votes cascaded away, got %d", len(votes))
	}
	options, err := st.ListOptions(pollID)
	if err != nil {
		t.Fatalf("ListOptions failed: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("Expected options cascaded away, got %d", len(options))
	}

	if err := st.DeletePoll(pollID); !errors.Is(err, store.ErrNoRow) {
		t.Errorf("Expected ErrNoRow for double delete, got %v", err)
	}
}

func TestClonePoll_CopiesOptionsOnly(t *testing.T) {
	st := testutil.SetupTestStore(t)

	creator := testutil.CreateTestUser(t, st, "Ada")
	pollID := testutil.CreateRestrictedPoll(t, st, "Movie night", creator)
	testutil.JoinTestPoll(t, st, pollID, creator)
	optID := testutil.AddTestOption(t, st, pollID, "Alien")
	testutil.AddTestOption(t, st, pollID, "Heat")
	testutil.CastTestVote(t, st, pollID, optID, creator, testutil.Rating(10), false)

	clone, err := st.ClonePoll(pollID, nil)
	if err != nil {
		t.Fatalf("ClonePoll failed: %v", err)
	}

	if clone.ID == pollID {
		t.Error("Expected clone to get a fresh ID")
	}
	if clone.Title != "Movie night" {
		t.Errorf("Expected title copied, got %s", clone.Title)
	}
	if !clone.RestrictedRating {
		t.Error("Expected restricted mode copied")
	}
	if clone.WinnerID != nil {
		t.Error("Expected clone to start without a winner")
	}

	options, err := st.ListOptions(clone.ID)
	if err != nil {
		t.Fatalf("ListOptions failed: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("Expected 2 cloned options, got %d", len(options))
	}
	if options[0].Label != "Alien" || options[1].Label != "Heat" {
		t.Errorf("Expected option order preserved, got %s, %s", options[0].Label, options[1].Label)
	}

	votes, err := st.ListVotes(clone.ID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("Expected no votes cloned, got %d", len(votes))
	}
	_, total, err := st.ParticipantCounts(clone.ID)
	if err != nil {
		t.Fatalf("ParticipantCounts failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected no participants cloned, got %d", total)
	}
}
