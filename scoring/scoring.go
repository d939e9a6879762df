// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"hash/fnv"
	"math/rand"
	"sort"

	"themis/models"
)

// epsilon replaces a zero rating in the harmonic mean so it behaves as a
// very small positive number instead of blowing up the reciprocal sum.
const epsilon = 0.1

// VetoPolicy selects how a veto affects the vetoed option.
type VetoPolicy int

const (
	// VetoDisqualifies removes the option from contention entirely: one
	// veto and it can never win, regardless of its other ratings.
	VetoDisqualifies VetoPolicy = iota
	// VetoExcludesVoter only drops the vetoing users' ratings for that
	// option; other users' ratings still count.
	VetoExcludesVoter
)

// OptionScore holds the aggregates for one surviving option.
type OptionScore struct {
	OptionID string
	Score    float64 // harmonic mean of ratings
	Variance float64 // population variance, 0 for a single rating
	Median   float64
	Raters   int
	Rank     int // 1-indexed position in the final ranking
}

// Winner returns the single winning option for a poll, or false when no
// option survives (no options, no ratings, or everything disqualified).
// Pure: repeated calls over the same inputs return the same option.
func Winner(pollID string, options []models.Option, votes []models.Vote, policy VetoPolicy) (string, bool) {
	ranked := Rank(pollID, options, votes, policy)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].OptionID, true
}

// Rank scores every surviving option and orders them best first.
//
// Ranking criteria, in order: higher harmonic-mean score, lower variance
// (more consensus), higher median, more raters, then a coin flip drawn from
// a generator seeded by the poll ID so exact ties resolve reproducibly.
func Rank(pollID string, options []models.Option, votes []models.Vote, policy VetoPolicy) []OptionScore {
	byOption := make(map[string][]models.Vote)
	for _, v := range votes {
		byOption[v.OptionID] = append(byOption[v.OptionID], v)
	}

	var scored []OptionScore
	for _, opt := range options {
		ratings, ok := survivingRatings(byOption[opt.ID], policy)
		if !ok || len(ratings) == 0 {
			continue // vetoed out, or not enough signal
		}

		scored = append(scored, OptionScore{
			OptionID: opt.ID,
			Score:    harmonicMean(ratings),
			Variance: variance(ratings),
			Median:   median(ratings),
			Raters:   len(ratings),
		})
	}

	if len(scored) == 0 {
		return nil
	}

	// Draw tie-break values in a fixed candidate order so the result
	// depends only on the poll ID and the surviving option set.
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].OptionID < scored[j].OptionID
	})
	rng := rand.New(rand.NewSource(seed(pollID)))
	coin := make(map[string]float64, len(scored))
	for _, s := range scored {
		coin[s.OptionID] = rng.Float64()
	}

	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]

		// 1. Higher harmonic mean wins
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		// 2. Lower variance wins (consensus beats dispersion)
		if a.Variance != b.Variance {
			return a.Variance < b.Variance
		}

		// 3. Higher median wins
		if a.Median != b.Median {
			return a.Median > b.Median
		}

		// 4. More raters wins
		if a.Raters != b.Raters {
			return a.Raters > b.Raters
		}

		// 5. Seeded coin flip
		return coin[a.OptionID] < coin[b.OptionID]
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored
}

// survivingRatings applies the veto policy to one option's votes and
// returns the ratings that still count. ok is false when the option is
// disqualified outright.
func survivingRatings(votes []models.Vote, policy VetoPolicy) (ratings []float64, ok bool) {
	vetoers := make(map[string]bool)
	for _, v := range votes {
		if v.Veto {
			vetoers[v.UserID] = true
		}
	}

	if policy == VetoDisqualifies && len(vetoers) > 0 {
		return nil, false
	}

	for _, v := range votes {
		if v.Rating == nil {
			continue
		}
		if policy == VetoExcludesVoter && vetoers[v.UserID] {
			continue
		}
		ratings = append(ratings, float64(*v.Rating))
	}
	return ratings, true
}

// harmonicMean computes n / Σ(1/max(r, ε)).
func harmonicMean(ratings []float64) float64 {
	sum := 0.0
	for _, r := range ratings {
		if r < epsilon {
			r = epsilon
		}
		sum += 1.0 / r
	}
	if sum == 0 {
		return 0.0
	}
	return float64(len(ratings)) / sum
}

// variance computes the population variance; 0 for a single rating.
func variance(ratings []float64) float64 {
	if len(ratings) < 2 {
		return 0.0
	}
	m := mean(ratings)
	sum := 0.0
	for _, r := range ratings {
		d := r - m
		sum += d * d
	}
	return sum / float64(len(ratings))
}

func mean(ratings []float64) float64 {
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// median returns the middle rating, averaging the central pair for even counts.
func median(ratings []float64) float64 {
	sorted := make([]float64, len(ratings))
	copy(sorted, ratings)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}

// seed derives the tie-break seed from the poll ID alone, never wall-clock
// time, so the coin flip is reproducible and auditable.
func seed(pollID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(pollID))
	return int64(h.Sum64())
}
