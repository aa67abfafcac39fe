// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballotline API.

# Handler Types

Each handler is a struct holding the workflow engine, snapshot store,
config, and metrics:

  - VoterHandler: voter registration and lookup
  - ProposalHandler: proposal submission and queries
  - VoteHandler: vote casting
  - PhaseHandler: lifecycle transitions, tally, reset
  - ResultsHandler: winners and current status

Handlers are created via constructor functions:

	voterHandler := handlers.NewVoterHandler(wf, store, cfg, m)

# Election Lifecycle

One route per workflow operation, gated by the engine's phase machine:

	POST /voters                 → Register (admin, registering_voters)
	POST /phase/proposals/start  → StartProposals (admin)
	POST /proposals              → Make (voter)
	POST /phase/proposals/end    → EndProposals (admin)
	POST /phase/voting/start     → StartVoting (admin)
	POST /votes                  → Cast (voter, once)
	POST /phase/voting/end       → EndVoting (admin)
	POST /tally                  → Tally (admin)
	GET  /winners                → Winners (public)
	POST /reset                  → Reset (admin, any phase)

Admin operations require the X-Admin-Key header; voter operations require
X-Voter-ID plus X-Voter-Key. Query endpoints accept either.

# Error Mapping

Engine rejections surface verbatim, mapped by taxonomy:

	Unauthorized                         → 403
	WrongPhase, AlreadyRegistered,
	AlreadyVoted, DuplicateProposal      → 409
	NoVoters, NoProposals                → 400
	InvalidProposalId                    → 404

Missing or invalid credentials (before a caller identity exists) → 401.

# Persistence

Every successful mutation flushes the engine snapshot through the db
store. Flush failures are logged and do not fail the request; the engine
state has already applied.
*/
package handlers
