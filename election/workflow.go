// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/ballotline/events"
)

// Rejection taxonomy. Every operation failure wraps (or is) exactly one of
// these; callers discriminate with errors.Is.
var (
	ErrUnauthorized      = errors.New("caller not authorized for this operation")
	ErrWrongPhase        = errors.New("operation not allowed in current phase")
	ErrAlreadyRegistered = errors.New("voter already registered")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrNoVoters          = errors.New("no voters registered")
	ErrNoProposals       = errors.New("no proposals registered")
	ErrDuplicateProposal = errors.New("duplicate proposal description")
	ErrInvalidProposalID = errors.New("invalid proposal id")
)

// Status is the single global stage of the election lifecycle. Transitions
// are strictly forward; only Reset moves backward.
type Status int

const (
	RegisteringVoters Status = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var statusNames = [...]string{
	"registering_voters",
	"proposals_registration_started",
	"proposals_registration_ended",
	"voting_session_started",
	"voting_session_ended",
	"votes_tallied",
}

func (s Status) String() string {
	if s < RegisteringVoters || s > VotesTallied {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Voter is one registered identity. VotedProposalID is meaningful only when
// HasVoted is true.
type Voter struct {
	Registered      bool `json:"registered"`
	HasVoted        bool `json:"has_voted"`
	VotedProposalID int  `json:"voted_proposal_id"`
}

// Proposal is one submitted proposal. ID is the zero-based insertion index,
// stable for the lifetime of the election cycle.
type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   uint   `json:"vote_count"`
}

// Workflow is the voting workflow engine: phase state machine, voter
// registry, proposal list, vote recording, and winner tally. A single mutex
// serializes every operation; each call either fully applies its effect or
// fails before mutating any state.
type Workflow struct {
	mu sync.Mutex

	admin     string
	status    Status
	voters    map[string]*Voter
	voterIDs  []string // registration order
	proposals []Proposal
	winners   []Proposal

	bus *events.Bus
}

// New creates a workflow in the RegisteringVoters phase. The administrator
// identity is fixed for the lifetime of the instance. bus may be nil.
func New(admin string, bus *events.Bus) *Workflow {
	return &Workflow{
		admin:  admin,
		status: RegisteringVoters,
		voters: make(map[string]*Voter),
		bus:    bus,
	}
}

// Admin returns the fixed administrator identity
func (w *Workflow) Admin() string {
	return w.admin
}

// Status returns the current phase
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// caller roles for the authorization guard
type role int

const (
	roleAdmin role = iota
	roleVoter
	roleAdminOrVoter
)

// authorize is the guard evaluated at the top of each operation.
// Callers are opaque identities compared against the administrator identity
// or the registered-voter set.
func (w *Workflow) authorize(caller string, required role) error {
	isAdmin := caller == w.admin
	_, isVoter := w.voters[caller]

	switch required {
	case roleAdmin:
		if !isAdmin {
			return fmt.Errorf("%w: administrator required", ErrUnauthorized)
		}
	case roleVoter:
		if !isVoter {
			return fmt.Errorf("%w: registered voter required", ErrUnauthorized)
		}
	case roleAdminOrVoter:
		if !isAdmin && !isVoter {
			return fmt.Errorf("%w: administrator or registered voter required", ErrUnauthorized)
		}
	}
	return nil
}

func (w *Workflow) requirePhase(want Status) error {
	if w.status != want {
		return fmt.Errorf("%w: in %s, requires %s", ErrWrongPhase, w.status, want)
	}
	return nil
}

// setStatus advances the phase and emits the transition event
func (w *Workflow) setStatus(next Status) {
	prev := w.status
	w.status = next
	w.bus.Publish(events.PhaseChanged(prev.String(), next.String()))
}

// RegisterVoter adds an identity to the voter registry. Administrator only,
// RegisteringVoters phase only.
func (w *Workflow) RegisterVoter(caller, identity string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return err
	}
	if err := w.requirePhase(RegisteringVoters); err != nil {
		return err
	}
	if _, ok := w.voters[identity]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, identity)
	}

	w.voters[identity] = &Voter{Registered: true}
	w.voterIDs = append(w.voterIDs, identity)
	w.bus.Publish(events.VoterRegistered(identity))
	return nil
}

// StartProposalsRegistration opens the proposal submission phase.
// Requires at least one registered voter.
func (w *Workflow) StartProposalsRegistration(caller string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return err
	}
	if err := w.requirePhase(RegisteringVoters); err != nil {
		return err
	}
	if len(w.voterIDs) == 0 {
		return ErrNoVoters
	}

	w.setStatus(ProposalsRegistrationStarted)
	return nil
}

// MakeProposal appends a new proposal and returns its assigned id.
// Registered voters only; the description must not exactly match an existing
// proposal's description (case-sensitive).
func (w *Workflow) MakeProposal(caller, description string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleVoter); err != nil {
		return 0, err
	}
	if err := w.requirePhase(ProposalsRegistrationStarted); err != nil {
		return 0, err
	}
	for _, p := range w.proposals {
		if p.Description == description {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateProposal, description)
		}
	}

	id := len(w.proposals)
	w.proposals = append(w.proposals, Proposal{ID: id, Description: description})
	w.bus.Publish(events.ProposalRegistered(id))
	return id, nil
}

// EndProposalsRegistration closes the proposal submission phase.
// Requires at least one proposal.
func (w *Workflow) EndProposalsRegistration(caller string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return err
	}
	if err := w.requirePhase(ProposalsRegistrationStarted); err != nil {
		return err
	}
	if len(w.proposals) == 0 {
		return ErrNoProposals
	}

	w.setStatus(ProposalsRegistrationEnded)
	return nil
}

// StartVotingSession opens the voting phase
func (w *Workflow) StartVotingSession(caller string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return err
	}
	if err := w.requirePhase(ProposalsRegistrationEnded); err != nil {
		return err
	}

	w.setStatus(VotingSessionStarted)
	return nil
}

// VoteForProposal records the caller's single vote for proposalID.
// A voter can vote at most once per cycle.
func (w *Workflow) VoteForProposal(caller string, proposalID int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleVoter); err != nil {
		return err
	}
	if err := w.requirePhase(VotingSessionStarted); err != nil {
		return err
	}
	voter := w.voters[caller]
	if voter.HasVoted {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, caller)
	}
	if proposalID < 0 || proposalID >= len(w.proposals) {
		return fmt.Errorf("%w: %d", ErrInvalidProposalID, proposalID)
	}

	w.proposals[proposalID].VoteCount++
	voter.HasVoted = true
	voter.VotedProposalID = proposalID
	w.bus.Publish(events.VoteCast(caller, proposalID))
	return nil
}

// EndVotingSession closes the voting phase
func (w *Workflow) EndVotingSession(caller string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return err
	}
	if err := w.requirePhase(VotingSessionStarted); err != nil {
		return err
	}

	w.setStatus(VotingSessionEnded)
	return nil
}

// CountVotes computes the winning set and moves the workflow to VotesTallied.
// Returns a copy of the winning set.
func (w *Workflow) CountVotes(caller string) ([]Proposal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return nil, err
	}
	if err := w.requirePhase(VotingSessionEnded); err != nil {
		return nil, err
	}

	w.winners = tally(w.proposals)
	w.setStatus(VotesTallied)

	winners := make([]events.Winner, len(w.winners))
	for i, p := range w.winners {
		winners[i] = events.Winner{ProposalID: p.ID, Description: p.Description, VoteCount: p.VoteCount}
	}
	w.bus.Publish(events.TallyCompleted(winners))

	return append([]Proposal(nil), w.winners...), nil
}

// Winners returns the winning set. Open to anyone, but only once votes have
// been tallied. Empty when no votes were cast.
func (w *Workflow) Winners() ([]Proposal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requirePhase(VotesTallied); err != nil {
		return nil, err
	}
	return append([]Proposal(nil), w.winners...), nil
}

// Proposals returns all proposals in id order. Administrator or registered
// voters, from ProposalsRegistrationEnded onward.
func (w *Workflow) Proposals(caller string) ([]Proposal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdminOrVoter); err != nil {
		return nil, err
	}
	if w.status < ProposalsRegistrationEnded {
		return nil, fmt.Errorf("%w: in %s, requires %s or later", ErrWrongPhase, w.status, ProposalsRegistrationEnded)
	}
	return append([]Proposal(nil), w.proposals...), nil
}

// ProposalByID returns a single proposal record
func (w *Workflow) ProposalByID(caller string, id int) (Proposal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdminOrVoter); err != nil {
		return Proposal{}, err
	}
	if w.status < ProposalsRegistrationEnded {
		return Proposal{}, fmt.Errorf("%w: in %s, requires %s or later", ErrWrongPhase, w.status, ProposalsRegistrationEnded)
	}
	if id < 0 || id >= len(w.proposals) {
		return Proposal{}, fmt.Errorf("%w: %d", ErrInvalidProposalID, id)
	}
	return w.proposals[id], nil
}

// VoterRecord returns the registry entry for identity. Administrator, or a
// voter looking up their own record.
func (w *Workflow) VoterRecord(caller, identity string) (Voter, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if caller != w.admin && caller != identity {
		return Voter{}, fmt.Errorf("%w: administrator or the voter itself required", ErrUnauthorized)
	}
	v, ok := w.voters[identity]
	if !ok {
		return Voter{}, nil
	}
	return *v, nil
}

// Reset clears all proposals, voter records, and the winning set, and
// returns the workflow to RegisteringVoters. Administrator only, legal from
// any phase. A cycle run after Reset behaves identically to a fresh instance.
func (w *Workflow) Reset(caller string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.authorize(caller, roleAdmin); err != nil {
		return err
	}

	w.voters = make(map[string]*Voter)
	w.voterIDs = nil
	w.proposals = nil
	w.winners = nil
	w.status = RegisteringVoters
	w.bus.Publish(events.WorkflowReset())
	return nil
}
