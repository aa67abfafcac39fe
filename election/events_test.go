// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotline/events"
)

func TestWorkflowEmitsEventsInEffectOrder(t *testing.T) {
	bus := events.NewBus()
	var seen []events.Event
	bus.Subscribe(func(e events.Event) {
		seen = append(seen, e)
	})

	wf := New(admin, bus)

	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.StartProposalsRegistration(admin))
	_, err := wf.MakeProposal("alice", "more coffee")
	require.NoError(t, err)
	require.NoError(t, wf.EndProposalsRegistration(admin))
	require.NoError(t, wf.StartVotingSession(admin))
	require.NoError(t, wf.VoteForProposal("alice", 0))
	require.NoError(t, wf.EndVotingSession(admin))
	_, err = wf.CountVotes(admin)
	require.NoError(t, err)

	wantTypes := []string{
		events.TypeVoterRegistered,
		events.TypePhaseChanged,
		events.TypeProposalRegistered,
		events.TypePhaseChanged,
		events.TypePhaseChanged,
		events.TypeVoteCast,
		events.TypePhaseChanged,
		events.TypePhaseChanged,
		events.TypeTallyCompleted,
	}
	require.Len(t, seen, len(wantTypes))
	for i, want := range wantTypes {
		assert.Equal(t, want, seen[i].Type, "event %d", i)
	}

	// Phase transitions carry the snake_case names
	assert.Equal(t, "registering_voters", seen[1].PrevPhase)
	assert.Equal(t, "proposals_registration_started", seen[1].NewPhase)

	// Vote and tally payloads
	assert.Equal(t, "alice", seen[5].Voter)
	assert.Equal(t, 0, seen[5].ProposalID)
	assert.Equal(t, events.OutcomeUniqueWinner, seen[8].Outcome)
	require.Len(t, seen[8].Winners, 1)
	assert.Equal(t, "more coffee", seen[8].Winners[0].Description)
	assert.Equal(t, uint(1), seen[8].Winners[0].VoteCount)
}

func TestRejectedOperationsEmitNothing(t *testing.T) {
	bus := events.NewBus()
	var seen []events.Event
	bus.Subscribe(func(e events.Event) {
		seen = append(seen, e)
	})

	wf := New(admin, bus)

	assert.Error(t, wf.RegisterVoter("mallory", "alice"))
	assert.Error(t, wf.StartProposalsRegistration(admin)) // no voters yet
	_, err := wf.MakeProposal("alice", "anything")
	assert.Error(t, err)

	assert.Empty(t, seen)
}

func TestResetEmitsSingleEvent(t *testing.T) {
	bus := events.NewBus()
	var seen []events.Event
	bus.Subscribe(func(e events.Event) {
		seen = append(seen, e)
	})

	wf := New(admin, bus)
	require.NoError(t, wf.RegisterVoter(admin, "alice"))
	require.NoError(t, wf.StartProposalsRegistration(admin))

	seen = nil
	require.NoError(t, wf.Reset(admin))

	require.Len(t, seen, 1)
	assert.Equal(t, events.TypeWorkflowReset, seen[0].Type)
	assert.Equal(t, RegisteringVoters, wf.Status())
}
