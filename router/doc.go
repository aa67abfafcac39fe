// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Ballotline API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(wf, store, cfg, m)

# Endpoints

Health and observability:

	GET /health
	GET /metrics

Voter registry (admin, requires X-Admin-Key):

	POST /voters      - Register voter
	GET  /voters/{id} - Voter record

Proposals (voter ops require X-Voter-ID + X-Voter-Key):

	POST /proposals      - Submit proposal
	GET  /proposals      - List proposals
	GET  /proposals/{id} - Proposal details

Voting:

	POST /votes - Cast a vote

Lifecycle (admin):

	POST /phase/proposals/start - Open proposal registration
	POST /phase/proposals/end   - Close proposal registration
	POST /phase/voting/start    - Open voting session
	POST /phase/voting/end      - Close voting session
	POST /tally                 - Compute winners
	POST /reset                 - Restart the cycle

Results (public):

	GET /winners - Winning set (after tally)
	GET /status  - Current phase

# Handler Initialization

The router creates handler instances with dependency injection:

	voterHandler := handlers.NewVoterHandler(wf, store, cfg, m)
	phaseHandler := handlers.NewPhaseHandler(wf, store, cfg, m)

All handlers receive the workflow engine, snapshot store, configuration,
and metrics.
*/
package router
