// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and view types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: identity
  - MakeProposalRequest: description
  - CastVoteRequest: proposal_id (pointer, so voting for id 0 works)

# Response Types

Types for JSON responses:

  - RegisterVoterResponse: identity, voter_key
  - MakeProposalResponse: proposal_id
  - CastVoteResponse: proposal_id, message
  - PhaseResponse: previous, current
  - StatusResponse: status
  - TallyResponse: outcome, winners
  - WinnersResponse: winners
  - ResetResponse: status
  - ErrorResponse: error, message

# Views

API projections of engine records:

  - ProposalView: id, description, vote_count
  - VoterView: identity, registered, has_voted, voted_proposal_id

# Constants

Tally outcomes:

	OutcomeNoWinner     = "no_winner"
	OutcomeUniqueWinner = "unique_winner"
	OutcomeDraw         = "draw"
*/
package models
