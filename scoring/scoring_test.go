// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"testing"

	"themis/models"
)

func option(id string) models.Option {
	return models.Option{ID: id, PollID: "poll-1", Label: "Option " + id}
}

func vote(optionID, userID string, rating int) models.Vote {
	r := rating
	return models.Vote{PollID: "poll-1", OptionID: optionID, UserID: userID, Rating: &r}
}

func veto(optionID, userID string) models.Vote {
	return models.Vote{PollID: "poll-1", OptionID: optionID, UserID: userID, Veto: true}
}

func TestWinner_NoOptions(t *testing.T) {
	_, ok := Winner("poll-1", nil, nil, VetoDisqualifies)
	if ok {
		t.Error("Expected no winner for empty option set")
	}
}

func TestWinner_NoVotes(t *testing.T) {
	options := []models.Option{option("a"), option("b")}

	_, ok := Winner("poll-1", options, nil, VetoDisqualifies)
	if ok {
		t.Error("Expected no winner when no votes were cast")
	}
}

func TestWinner_VetoedOptionNeverWins(t *testing.T) {
	options := []models.Option{option("a"), option("b")}
	votes := []models.Vote{
		// Option a has perfect ratings but one veto
		vote("a", "u1", 10),
		vote("a", "u2", 10),
		veto("a", "u3"),
		// Option b has a mediocre rating
		vote("b", "u1", 3),
	}

	winner, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner")
	}
	if winner != "b" {
		t.Errorf("Expected vetoed option to lose; winner = %s", winner)
	}
}

func TestWinner_AllOptionsVetoed(t *testing.T) {
	options := []models.Option{option("a"), option("b")}
	votes := []models.Vote{
		vote("a", "u1", 10),
		veto("a", "u2"),
		vote("b", "u1", 10),
		veto("b", "u2"),
	}

	_, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if ok {
		t.Error("Expected no winner when every option is vetoed")
	}
}

func TestWinner_LegacyPolicyKeepsVetoedOption(t *testing.T) {
	options := []models.Option{option("a"), option("b")}
	votes := []models.Vote{
		vote("a", "u1", 10),
		vote("a", "u2", 10),
		veto("a", "u3"),
		vote("b", "u1", 3),
	}

	winner, ok := Winner("poll-1", options, votes, VetoExcludesVoter)
	if !ok {
		t.Fatal("Expected a winner")
	}
	if winner != "a" {
		t.Errorf("Legacy policy should only drop the vetoer's rating; winner = %s", winner)
	}
}

func TestWinner_LegacyPolicyDropsVetoersOwnRating(t *testing.T) {
	options := []models.Option{option("a")}
	// u1 both rated and vetoed option a; the rating must not count.
	r := 10
	votes := []models.Vote{
		{PollID: "poll-1", OptionID: "a", UserID: "u1", Rating: &r, Veto: true},
	}

	_, ok := Winner("poll-1", options, votes, VetoExcludesVoter)
	if ok {
		t.Error("Expected no winner once the only rater's rating is excluded")
	}
}

func TestWinner_HigherHarmonicMeanWins(t *testing.T) {
	options := []models.Option{option("a"), option("b")}
	votes := []models.Vote{
		vote("a", "u1", 10), vote("a", "u2", 10), vote("a", "u3", 10),
		vote("b", "u1", 1), vote("b", "u2", 1), vote("b", "u3", 1),
	}

	winner, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner")
	}
	if winner != "a" {
		t.Errorf("Expected the {10,10,10} option to beat {1,1,1}; winner = %s", winner)
	}
}

func TestWinner_HarmonicMeanPunishesLowOutlier(t *testing.T) {
	// {10, 1} has a harmonic mean of ~1.8, far below {5, 5}'s 5.0, even
	// though both have an arithmetic mean above 5 and 5 respectively.
	options := []models.Option{option("steady"), option("divisive")}
	votes := []models.Vote{
		vote("steady", "u1", 5), vote("steady", "u2", 5),
		vote("divisive", "u1", 10), vote("divisive", "u2", 1),
	}

	winner, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner")
	}
	if winner != "steady" {
		t.Errorf("Expected consistent ratings to win; winner = %s", winner)
	}
}

func TestWinner_ZeroRatingCountsAsEpsilon(t *testing.T) {
	// A zero rating behaves as a very small positive number, not "excluded":
	// the option still has signal, its score is just tiny.
	options := []models.Option{option("a"), option("b")}
	votes := []models.Vote{
		vote("a", "u1", 0),
		vote("b", "u1", 1),
	}

	winner, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner; zero ratings must not exclude the option")
	}
	if winner != "b" {
		t.Errorf("Expected rating 1 to beat rating 0; winner = %s", winner)
	}

	ranked := Rank("poll-1", options, votes, VetoDisqualifies)
	if len(ranked) != 2 {
		t.Fatalf("Expected both options ranked, got %d", len(ranked))
	}
}

func TestWinner_LowerVarianceBreaksTie(t *testing.T) {
	// {4,4} and {8,8,2} have the same harmonic mean: 2/(1/4+1/4) = 4 and
	// 3/(1/8+1/8+1/2) = 4. All reciprocals are exact in binary, so the
	// scores tie exactly and variance decides (0 vs 8).
	options := []models.Option{option("consensus"), option("split")}
	votes := []models.Vote{
		vote("consensus", "u1", 4), vote("consensus", "u2", 4),
		vote("split", "u1", 8), vote("split", "u2", 8), vote("split", "u3", 2),
	}

	winner, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner")
	}
	if winner != "consensus" {
		t.Errorf("Expected lower variance to win the harmonic-mean tie; winner = %s", winner)
	}
}

func TestWinner_MoreRatersBreaksTie(t *testing.T) {
	// {8} and {8,8} tie exactly on score, variance and median; rater
	// count decides.
	options := []models.Option{option("narrow"), option("broad")}
	votes := []models.Vote{
		vote("narrow", "u1", 8),
		vote("broad", "u1", 8), vote("broad", "u2", 8),
	}

	winner, ok := Winner("poll-1", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner")
	}
	if winner != "broad" {
		t.Errorf("Expected more raters to win the full tie; winner = %s", winner)
	}
}

func TestWinner_DeterministicAcrossInvocations(t *testing.T) {
	// Exact tie on every tier: the seeded coin flip must resolve it the
	// same way every time for the same poll ID.
	options := []models.Option{option("x"), option("y"), option("z")}
	votes := []models.Vote{
		vote("x", "u1", 7), vote("y", "u1", 7), vote("z", "u1", 7),
	}

	first, ok := Winner("poll-tie", options, votes, VetoDisqualifies)
	if !ok {
		t.Fatal("Expected a winner")
	}
	for i := 0; i < 50; i++ {
		again, ok := Winner("poll-tie", options, votes, VetoDisqualifies)
		if !ok || again != first {
			t.Fatalf("Winner changed across invocations: %s then %s", first, again)
		}
	}
}

func TestWinner_SeedDependsOnlyOnPollID(t *testing.T) {
	options := []models.Option{option("x"), option("y"), option("z"), option("w")}
	votes := []models.Vote{
		vote("x", "u1", 7), vote("y", "u1", 7), vote("z", "u1", 7), vote("w", "u1", 7),
	}

	// Different polls may pick different winners from the same tie...
	winners := make(map[string]bool)
	for _, pollID := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"} {
		w, ok := Winner(pollID, options, votes, VetoDisqualifies)
		if !ok {
			t.Fatal("Expected a winner")
		}
		winners[w] = true

		// ...but each poll always picks the same one.
		again, _ := Winner(pollID, options, votes, VetoDisqualifies)
		if again != w {
			t.Fatalf("Poll %s flip-flopped between %s and %s", pollID, w, again)
		}
	}
	if len(winners) < 2 {
		t.Error("Expected the seed to vary across poll IDs")
	}
}

func TestRank_AssignsSequentialRanks(t *testing.T) {
	options := []models.Option{option("a"), option("b"), option("c")}
	votes := []models.Vote{
		vote("a", "u1", 2),
		vote("b", "u1", 8),
		vote("c", "u1", 5),
	}

	ranked := Rank("poll-1", options, votes, VetoDisqualifies)
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked options, got %d", len(ranked))
	}
	want := []string{"b", "c", "a"}
	for i, w := range want {
		if ranked[i].OptionID != w {
			t.Errorf("Rank %d: expected %s, got %s", i+1, w, ranked[i].OptionID)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, ranked[i].Rank)
		}
	}
}

func TestRank_UnratedOptionExcluded(t *testing.T) {
	options := []models.Option{option("rated"), option("silent")}
	votes := []models.Vote{vote("rated", "u1", 5)}

	ranked := Rank("poll-1", options, votes, VetoDisqualifies)
	if len(ranked) != 1 {
		t.Fatalf("Expected only the rated option, got %d entries", len(ranked))
	}
	if ranked[0].OptionID != "rated" {
		t.Errorf("Expected 'rated' to survive, got %s", ranked[0].OptionID)
	}
}

func TestVariance_PopulationVariance(t *testing.T) {
	// {3, 7}: mean 5, population variance ((3-5)^2 + (7-5)^2) / 2 = 4.
	got := variance([]float64{3, 7})
	if got != 4.0 {
		t.Errorf("Expected population variance 4.0, got %v", got)
	}

	if v := variance([]float64{5}); v != 0.0 {
		t.Errorf("Expected single-rating variance 0, got %v", v)
	}
}

func TestMedian_EvenAndOdd(t *testing.T) {
	if m := median([]float64{1, 9, 5}); m != 5.0 {
		t.Errorf("Expected odd-count median 5, got %v", m)
	}
	if m := median([]float64{2, 8}); m != 5.0 {
		t.Errorf("Expected even-count median 5, got %v", m)
	}
}

func TestHarmonicMean_KnownValues(t *testing.T) {
	// {2, 4, 8, 8}: 4 / (1/2 + 1/4 + 1/8 + 1/8) = 4.
	if got := harmonicMean([]float64{2, 4, 8, 8}); got != 4.0 {
		t.Errorf("Expected harmonic mean 4, got %v", got)
	}
}
