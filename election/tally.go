// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// tally computes the winning set: every proposal holding the maximum vote
// count, provided that maximum is above zero. Single pass in id order, so
// ties come out in the order proposals were originally submitted.
//
// A proposal with zero votes never wins; an all-zero tally yields an empty
// winning set rather than declaring every proposal a winner.
func tally(proposals []Proposal) []Proposal {
	var maxVotes uint
	var winners []Proposal

	for _, p := range proposals {
		switch {
		case p.VoteCount > maxVotes:
			maxVotes = p.VoteCount
			winners = []Proposal{p}
		case p.VoteCount == maxVotes && maxVotes > 0:
			winners = append(winners, p)
		}
	}

	return winners
}
