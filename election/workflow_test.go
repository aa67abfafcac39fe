// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const admin = "admin"

// runToVoting drives a fresh cycle to voting_session_started with the given
// voters registered and numbered proposals ("Proposal 1".."Proposal N")
// submitted by the first voter.
func runToVoting(t *testing.T, wf *Workflow, voters []string, proposalCount int) {
	t.Helper()

	for _, v := range voters {
		require.NoError(t, wf.RegisterVoter(admin, v))
	}
	require.NoError(t, wf.StartProposalsRegistration(admin))
	for i := 0; i < proposalCount; i++ {
		_, err := wf.MakeProposal(voters[0], fmt.Sprintf("Proposal %d", i+1))
		require.NoError(t, err)
	}
	require.NoError(t, wf.EndProposalsRegistration(admin))
	require.NoError(t, wf.StartVotingSession(admin))
}

func TestRegisterVoter(t *testing.T) {
	wf := New(admin, nil)

	require.NoError(t, wf.RegisterVoter(admin, "alice"))

	v, err := wf.VoterRecord(admin, "alice")
	require.NoError(t, err)
	assert.True(t, v.Registered)
	assert.False(t, v.HasVoted)
}

func TestRegisterVoter_Duplicate(t *testing.T) {
	wf := New(admin, nil)

	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	err := wf.RegisterVoter(admin, "alice")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterVoter_NotAdmin(t *testing.T) {
	wf := New(admin, nil)

	err := wf.RegisterVoter("mallory", "mallory")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterVoter_WrongPhase(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice"}, 1)

	err := wf.RegisterVoter(admin, "bob")
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestStartProposalsRegistration_NoVoters(t *testing.T) {
	wf := New(admin, nil)

	err := wf.StartProposalsRegistration(admin)
	assert.ErrorIs(t, err, ErrNoVoters)
	assert.Equal(t, RegisteringVoters, wf.Status())
}

func TestMakeProposal_AssignsDenseIDs(t *testing.T) {
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.StartProposalsRegistration(admin))

	id0, err := wf.MakeProposal("alice", "first")
	require.NoError(t, err)
	id1, err := wf.MakeProposal("alice", "second")
	require.NoError(t, err)

	assert.Equal(t, 0, id0)
	assert.Equal(t, 1, id1)
}

func TestMakeProposal_NotRegistered(t *testing.T) {
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.StartProposalsRegistration(admin))

	_, err := wf.MakeProposal("mallory", "sneaky")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The administrator is not a registered voter either
	_, err = wf.MakeProposal(admin, "admin proposal")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMakeProposal_DuplicateDescription(t *testing.T) {
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.RegisterVoter(admin, "bob"))
	require.NoError(t, wf.StartProposalsRegistration(admin))

	_, err := wf.MakeProposal("alice", "More coffee")
	require.NoError(t, err)

	_, err = wf.MakeProposal("bob", "More coffee")
	assert.ErrorIs(t, err, ErrDuplicateProposal)

	// Comparison is exact and case-sensitive
	_, err = wf.MakeProposal("bob", "more coffee")
	assert.NoError(t, err)
}

func TestEndProposalsRegistration_NoProposals(t *testing.T) {
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.StartProposalsRegistration(admin))

	err := wf.EndProposalsRegistration(admin)
	assert.ErrorIs(t, err, ErrNoProposals)
	assert.Equal(t, ProposalsRegistrationStarted, wf.Status())
}

func TestVoteForProposal(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice", "bob"}, 2)

	require.NoError(t, wf.VoteForProposal("alice", 1))

	v, err := wf.VoterRecord(admin, "alice")
	require.NoError(t, err)
	assert.True(t, v.HasVoted)
	assert.Equal(t, 1, v.VotedProposalID)

	p, err := wf.ProposalByID(admin, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.VoteCount)
}

func TestVoteForProposal_Twice(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice"}, 3)

	require.NoError(t, wf.VoteForProposal("alice", 0))

	// Second vote fails regardless of target proposal
	for id := 0; id < 3; id++ {
		err := wf.VoteForProposal("alice", id)
		assert.ErrorIs(t, err, ErrAlreadyVoted)
	}

	// And the failed attempts changed nothing
	p, err := wf.ProposalByID(admin, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.VoteCount)
}

func TestVoteForProposal_OutOfRange(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice"}, 2)

	assert.ErrorIs(t, wf.VoteForProposal("alice", -1), ErrInvalidProposalID)
	assert.ErrorIs(t, wf.VoteForProposal("alice", 2), ErrInvalidProposalID)

	// A rejected vote must not mark the voter as having voted
	v, err := wf.VoterRecord(admin, "alice")
	require.NoError(t, err)
	assert.False(t, v.HasVoted)
}

func TestVoteSumInvariant(t *testing.T) {
	wf := New(admin, nil)
	voters := []string{"alice", "bob", "carol", "dave"}
	runToVoting(t, wf, voters, 3)

	votes := map[string]int{"alice": 0, "bob": 2, "carol": 2}
	for voter, id := range votes {
		require.NoError(t, wf.VoteForProposal(voter, id))
	}
	// dave abstains; mallory is rejected
	assert.Error(t, wf.VoteForProposal("mallory", 0))

	proposals, err := wf.Proposals(admin)
	require.NoError(t, err)

	var sum uint
	for _, p := range proposals {
		sum += p.VoteCount
	}

	voted := 0
	for _, voter := range voters {
		v, err := wf.VoterRecord(admin, voter)
		require.NoError(t, err)
		if v.HasVoted {
			voted++
		}
	}

	assert.Equal(t, uint(voted), sum)
}

func TestPhaseTransitions_WrongPhase(t *testing.T) {
	// Every transition called outside its exact source phase fails
	// WrongPhase; no silent no-ops.
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))

	assert.ErrorIs(t, wf.EndProposalsRegistration(admin), ErrWrongPhase)
	assert.ErrorIs(t, wf.StartVotingSession(admin), ErrWrongPhase)
	assert.ErrorIs(t, wf.EndVotingSession(admin), ErrWrongPhase)
	_, err := wf.CountVotes(admin)
	assert.ErrorIs(t, err, ErrWrongPhase)

	require.NoError(t, wf.StartProposalsRegistration(admin))

	assert.ErrorIs(t, wf.StartProposalsRegistration(admin), ErrWrongPhase)
	assert.ErrorIs(t, wf.StartVotingSession(admin), ErrWrongPhase)
	assert.ErrorIs(t, wf.EndVotingSession(admin), ErrWrongPhase)
}

func TestAdminOperations_Unauthorized(t *testing.T) {
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))

	// alice is a registered voter with every other precondition satisfied,
	// but administrator-only operations still reject her.
	assert.ErrorIs(t, wf.RegisterVoter("alice", "bob"), ErrUnauthorized)
	assert.ErrorIs(t, wf.StartProposalsRegistration("alice"), ErrUnauthorized)
	assert.ErrorIs(t, wf.Reset("alice"), ErrUnauthorized)

	wf2 := New(admin, nil)
	runToVoting(t, wf2, []string{"alice"}, 1)
	assert.ErrorIs(t, wf2.EndVotingSession("alice"), ErrUnauthorized)
	require.NoError(t, wf2.EndVotingSession(admin))
	_, err := wf2.CountVotes("alice")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCountVotes_AllZero(t *testing.T) {
	// 4 voters, 6 proposals, zero votes cast: empty winning set
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"v1", "v2", "v3", "v4"}, 6)
	require.NoError(t, wf.EndVotingSession(admin))

	winners, err := wf.CountVotes(admin)
	require.NoError(t, err)
	assert.Empty(t, winners)

	got, err := wf.Winners()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountVotes_SingleWinner(t *testing.T) {
	// 3 voters, 5 proposals, votes (v1→0, v2→0, v3→3)
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"v1", "v2", "v3"}, 5)
	require.NoError(t, wf.VoteForProposal("v1", 0))
	require.NoError(t, wf.VoteForProposal("v2", 0))
	require.NoError(t, wf.VoteForProposal("v3", 3))
	require.NoError(t, wf.EndVotingSession(admin))

	winners, err := wf.CountVotes(admin)
	require.NoError(t, err)

	require.Len(t, winners, 1)
	assert.Equal(t, 0, winners[0].ID)
	assert.Equal(t, "Proposal 1", winners[0].Description)
	assert.Equal(t, uint(2), winners[0].VoteCount)
}

func TestCountVotes_Draw(t *testing.T) {
	// 4 voters, 6 proposals, votes (v1→0, v2→0, v3→3, v4→3):
	// two winners, ascending id order
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"v1", "v2", "v3", "v4"}, 6)
	require.NoError(t, wf.VoteForProposal("v1", 0))
	require.NoError(t, wf.VoteForProposal("v2", 0))
	require.NoError(t, wf.VoteForProposal("v3", 3))
	require.NoError(t, wf.VoteForProposal("v4", 3))
	require.NoError(t, wf.EndVotingSession(admin))

	winners, err := wf.CountVotes(admin)
	require.NoError(t, err)

	require.Len(t, winners, 2)
	assert.Equal(t, "Proposal 1", winners[0].Description)
	assert.Equal(t, uint(2), winners[0].VoteCount)
	assert.Equal(t, "Proposal 4", winners[1].Description)
	assert.Equal(t, uint(2), winners[1].VoteCount)
	assert.Less(t, winners[0].ID, winners[1].ID)
}

func TestWinners_BeforeTally(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice"}, 1)

	_, err := wf.Winners()
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestProposals_QueryGating(t *testing.T) {
	wf := New(admin, nil)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.StartProposalsRegistration(admin))
	_, err := wf.MakeProposal("alice", "Proposal 1")
	require.NoError(t, err)

	// Too early for anyone
	_, err = wf.Proposals(admin)
	assert.ErrorIs(t, err, ErrWrongPhase)

	require.NoError(t, wf.EndProposalsRegistration(admin))

	_, err = wf.Proposals("mallory")
	assert.ErrorIs(t, err, ErrUnauthorized)

	proposals, err := wf.Proposals("alice")
	require.NoError(t, err)
	assert.Len(t, proposals, 1)

	_, err = wf.ProposalByID(admin, 5)
	assert.ErrorIs(t, err, ErrInvalidProposalID)
}

func TestReset(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice", "bob"}, 2)
	require.NoError(t, wf.VoteForProposal("alice", 1))
	require.NoError(t, wf.EndVotingSession(admin))
	_, err := wf.CountVotes(admin)
	require.NoError(t, err)

	require.NoError(t, wf.Reset(admin))
	assert.Equal(t, RegisteringVoters, wf.Status())

	// Old registrations are gone
	v, err := wf.VoterRecord(admin, "alice")
	require.NoError(t, err)
	assert.False(t, v.Registered)

	// A full cycle after reset behaves like a fresh instance, including
	// previously used proposal descriptions and restarted ids.
	require.NoError(t, wf.RegisterVoter(admin, "carol"))
	require.NoError(t, wf.StartProposalsRegistration(admin))
	id, err := wf.MakeProposal("carol", "Proposal 1")
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	require.NoError(t, wf.EndProposalsRegistration(admin))
	require.NoError(t, wf.StartVotingSession(admin))
	require.NoError(t, wf.VoteForProposal("carol", 0))
	require.NoError(t, wf.EndVotingSession(admin))

	winners, err := wf.CountVotes(admin)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Proposal 1", winners[0].Description)
	assert.Equal(t, uint(1), winners[0].VoteCount)
}

func TestSnapshotRoundTrip(t *testing.T) {
	wf := New(admin, nil)
	runToVoting(t, wf, []string{"alice", "bob"}, 2)
	require.NoError(t, wf.VoteForProposal("alice", 0))

	restored := FromSnapshot(wf.Snapshot(), nil)

	assert.Equal(t, VotingSessionStarted, restored.Status())
	assert.Equal(t, admin, restored.Admin())

	// bob can still vote, alice cannot
	require.NoError(t, restored.VoteForProposal("bob", 1))
	assert.ErrorIs(t, restored.VoteForProposal("alice", 1), ErrAlreadyVoted)

	// The snapshot is a deep copy: mutating the restored workflow must not
	// touch the original.
	p, err := wf.ProposalByID(admin, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(0), p.VoteCount)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "registering_voters", RegisteringVoters.String())
	assert.Equal(t, "votes_tallied", VotesTallied.String())
	assert.Equal(t, "status(42)", Status(42).String())
}
