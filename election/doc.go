// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the voting workflow engine: a phase state
machine, voter registry, proposal list, single-vote recording, and winner
tally for one election cycle.

# Lifecycle

The workflow moves through six phases, always forward:

	registering_voters
	→ proposals_registration_started
	→ proposals_registration_ended
	→ voting_session_started
	→ voting_session_ended
	→ votes_tallied

Each transition is triggered by the administrator. Reset is the only
backward move: it clears everything and returns to registering_voters,
from any phase.

# Usage

Construct one Workflow per election cycle:

	wf := election.New("admin", bus)

	wf.RegisterVoter("admin", "alice")
	wf.StartProposalsRegistration("admin")
	id, _ := wf.MakeProposal("alice", "Proposal 1")
	wf.EndProposalsRegistration("admin")
	wf.StartVotingSession("admin")
	wf.VoteForProposal("alice", id)
	wf.EndVotingSession("admin")
	winners, _ := wf.CountVotes("admin")

Every operation takes the caller's opaque identity as its first argument
and compares it against the fixed administrator identity or the
registered-voter set. Verifying that the identity actually belongs to the
caller is the host's job (see the auth package).

# Errors

All rejections wrap one of the package sentinels:

	ErrUnauthorized, ErrWrongPhase, ErrAlreadyRegistered, ErrAlreadyVoted,
	ErrNoVoters, ErrNoProposals, ErrDuplicateProposal, ErrInvalidProposalID

Discriminate with errors.Is. No operation partially mutates state before
failing: every rejection leaves the workflow exactly as it was.

# Tally

CountVotes runs a single pass over the proposals in id order, keeping every
proposal tied at the maximum vote count. A proposal with zero votes never
wins, so a cycle where nobody voted tallies to an empty winning set. Ties
are reported in proposal submission order.

# Concurrency

A single mutex serializes all operations, reads included. The engine is the
"single serialized authority" of the workflow contract: no interleaving, no
partially applied mutations visible to anyone.

# Persistence

Snapshot and FromSnapshot export and restore the full state so a host can
flush after each mutation and reload at startup (see the db package).
*/
package election
