// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Tally outcome constants
const (
	OutcomeNoWinner     = "no_winner"
	OutcomeUniqueWinner = "unique_winner"
	OutcomeDraw         = "draw"
)

// Request types

type RegisterVoterRequest struct {
	Identity string `json:"identity"`
}

type MakeProposalRequest struct {
	Description string `json:"description"`
}

// ProposalID is a pointer so that a missing field is distinguishable from a
// legitimate vote for proposal 0.
type CastVoteRequest struct {
	ProposalID *int `json:"proposal_id"`
}

// Response types

type RegisterVoterResponse struct {
	Identity string `json:"identity"`
	VoterKey string `json:"voter_key"`
}

type MakeProposalResponse struct {
	ProposalID int `json:"proposal_id"`
}

type CastVoteResponse struct {
	ProposalID int    `json:"proposal_id"`
	Message    string `json:"message"`
}

type PhaseResponse struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type TallyResponse struct {
	Outcome string         `json:"outcome"`
	Winners []ProposalView `json:"winners"`
}

type WinnersResponse struct {
	Winners []ProposalView `json:"winners"`
}

type ResetResponse struct {
	Status string `json:"status"`
}

// Domain views

type ProposalView struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   uint   `json:"vote_count"`
}

type VoterView struct {
	Identity        string `json:"identity"`
	Registered      bool   `json:"registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID *int   `json:"voted_proposal_id,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
