// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package events carries the workflow's advisory notification signals:
// fire-and-forget broadcast events delivered synchronously, in the order
// effects occur.
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the voting workflow
const (
	TypeVoterRegistered    = "voter_registered"
	TypePhaseChanged       = "phase_changed"
	TypeProposalRegistered = "proposal_registered"
	TypeVoteCast           = "vote_cast"
	TypeTallyCompleted     = "tally_completed"
	TypeWorkflowReset      = "workflow_reset"
)

// Tally outcomes carried by TypeTallyCompleted events
const (
	OutcomeNoWinner     = "no_winner"
	OutcomeUniqueWinner = "unique_winner"
	OutcomeDraw         = "draw"
)

// Winner is the (description, vote count) pair reported in tally events.
type Winner struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   uint   `json:"vote_count"`
}

// Event is a single notification signal. Only the fields relevant to the
// event type are populated; constructors below set them.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	At   time.Time `json:"at"`

	Voter      string   `json:"voter,omitempty"`
	ProposalID int      `json:"proposal_id,omitempty"`
	PrevPhase  string   `json:"prev_phase,omitempty"`
	NewPhase   string   `json:"new_phase,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
	Winners    []Winner `json:"winners,omitempty"`
}

func newEvent(eventType string) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: eventType,
		At:   time.Now(),
	}
}

// VoterRegistered builds a voter registration event
func VoterRegistered(identity string) Event {
	e := newEvent(TypeVoterRegistered)
	e.Voter = identity
	return e
}

// PhaseChanged builds a phase transition event
func PhaseChanged(prev, next string) Event {
	e := newEvent(TypePhaseChanged)
	e.PrevPhase = prev
	e.NewPhase = next
	return e
}

// ProposalRegistered builds a proposal submission event
func ProposalRegistered(proposalID int) Event {
	e := newEvent(TypeProposalRegistered)
	e.ProposalID = proposalID
	return e
}

// VoteCast builds a vote event
func VoteCast(identity string, proposalID int) Event {
	e := newEvent(TypeVoteCast)
	e.Voter = identity
	e.ProposalID = proposalID
	return e
}

// TallyCompleted builds a tally outcome event. The outcome is derived from
// the winner count: zero winners is no_winner, one is unique_winner, more
// than one is draw.
func TallyCompleted(winners []Winner) Event {
	e := newEvent(TypeTallyCompleted)
	e.Winners = winners
	switch len(winners) {
	case 0:
		e.Outcome = OutcomeNoWinner
	case 1:
		e.Outcome = OutcomeUniqueWinner
	default:
		e.Outcome = OutcomeDraw
	}
	return e
}

// WorkflowReset builds a reset event
func WorkflowReset() Event {
	return newEvent(TypeWorkflowReset)
}

// Subscriber receives events. Subscribers are invoked synchronously, in the
// order effects occur; a slow subscriber slows the workflow down.
type Subscriber func(Event)

// Bus fans events out to subscribers. Delivery is fire-and-forget: the bus
// makes no guarantees beyond synchronous, in-order invocation.
type Bus struct {
	mu   sync.Mutex
	subs []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a subscriber for all subsequent events
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the event to every subscriber in subscription order.
// A nil bus drops events, so callers don't have to guard emission.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}

// SlogSink returns a subscriber that logs every event via slog
func SlogSink() Subscriber {
	return func(e Event) {
		slog.Info("workflow event",
			"event_id", e.ID,
			"type", e.Type,
			"voter", e.Voter,
			"proposal_id", e.ProposalID,
			"prev_phase", e.PrevPhase,
			"new_phase", e.NewPhase,
			"outcome", e.Outcome,
		)
	}
}
