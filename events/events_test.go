// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()

	var seen []string
	bus.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
	})

	bus.Publish(VoterRegistered("alice"))
	bus.Publish(PhaseChanged("registering_voters", "proposals_registration_started"))
	bus.Publish(ProposalRegistered(0))
	bus.Publish(VoteCast("alice", 0))

	assert.Equal(t, []string{
		TypeVoterRegistered,
		TypePhaseChanged,
		TypeProposalRegistered,
		TypeVoteCast,
	}, seen)
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	first, second := 0, 0
	bus.Subscribe(func(Event) { first++ })
	bus.Subscribe(func(Event) { second++ })

	bus.Publish(WorkflowReset())

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestBus_NilBusDropsEvents(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Publish(VoterRegistered("alice"))
	})
}

func TestEventConstructors(t *testing.T) {
	e := VoteCast("bob", 3)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.At.IsZero())
	assert.Equal(t, "bob", e.Voter)
	assert.Equal(t, 3, e.ProposalID)

	p := PhaseChanged("a", "b")
	assert.Equal(t, "a", p.PrevPhase)
	assert.Equal(t, "b", p.NewPhase)
	assert.NotEqual(t, e.ID, p.ID)
}

func TestTallyCompleted_Outcomes(t *testing.T) {
	assert.Equal(t, OutcomeNoWinner, TallyCompleted(nil).Outcome)

	unique := TallyCompleted([]Winner{{ProposalID: 0, Description: "a", VoteCount: 2}})
	assert.Equal(t, OutcomeUniqueWinner, unique.Outcome)
	require.Len(t, unique.Winners, 1)

	draw := TallyCompleted([]Winner{
		{ProposalID: 0, Description: "a", VoteCount: 2},
		{ProposalID: 3, Description: "d", VoteCount: 2},
	})
	assert.Equal(t, OutcomeDraw, draw.Outcome)
}
