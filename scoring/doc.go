// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring ranks a poll's options by the harmonic mean of their
ratings.

# Why Harmonic Mean

The harmonic mean punishes low outliers hard: an option one person
hates scores far below an option everyone merely likes. That makes it
a consensus-seeking aggregate, which is the point of a group decision.
A rating of 0 is clamped to a small epsilon so a hated option stays
comparable instead of dividing by zero.

# Vetoes

Two veto policies exist:

  - VetoDisqualifies: any veto removes the option from contention (default)
  - VetoExcludesVoter: only the vetoer's own rating is dropped

# Tie-Breaking

Options with equal scores are ordered by lower variance, then higher
median, then more raters, then a coin flip seeded by the poll ID. The
seed makes the whole ranking a pure function of the poll's votes, so
every replica and every retry agrees on the winner:

	winnerID, ok := scoring.Winner(pollID, options, votes, scoring.VetoDisqualifies)
*/
package scoring
