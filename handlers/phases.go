// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
	"github.com/danielhkuo/ballotline/models"
)

// PhaseHandler owns the administrator-triggered lifecycle operations:
// the four forward phase transitions, the tally, and the reset.
type PhaseHandler struct {
	wf      *election.Workflow
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewPhaseHandler(wf *election.Workflow, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *PhaseHandler {
	return &PhaseHandler{wf: wf, store: store, cfg: cfg, metrics: m}
}

// transition runs one forward phase transition and writes the shared
// previous/current response.
func (h *PhaseHandler) transition(w http.ResponseWriter, r *http.Request, operation string, fn func(caller string) error) {
	caller, err := adminCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	previous := h.wf.Status()
	if err := fn(caller); err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	current := h.wf.Status()
	persist(h.store, h.wf)
	h.metrics.RecordOperation(operation)

	slog.Info("phase changed", "previous", previous.String(), "current", current.String())

	middleware.JSONResponse(w, http.StatusOK, models.PhaseResponse{
		Previous: previous.String(),
		Current:  current.String(),
	})
}

// StartProposals handles POST /phase/proposals/start
func (h *PhaseHandler) StartProposals(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start_proposals_registration", h.wf.StartProposalsRegistration)
}

// EndProposals handles POST /phase/proposals/end
func (h *PhaseHandler) EndProposals(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "end_proposals_registration", h.wf.EndProposalsRegistration)
}

// StartVoting handles POST /phase/voting/start
func (h *PhaseHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start_voting_session", h.wf.StartVotingSession)
}

// EndVoting handles POST /phase/voting/end
func (h *PhaseHandler) EndVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "end_voting_session", h.wf.EndVotingSession)
}

// Tally handles POST /tally
// Computes the winning set and seals the cycle at votes_tallied.
func (h *PhaseHandler) Tally(w http.ResponseWriter, r *http.Request) {
	caller, err := adminCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	winners, err := h.wf.CountVotes(caller)
	if err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	persist(h.store, h.wf)
	h.metrics.RecordOperation("count_votes")
	h.metrics.RecordTally()

	outcome := models.OutcomeNoWinner
	switch len(winners) {
	case 0:
	case 1:
		outcome = models.OutcomeUniqueWinner
	default:
		outcome = models.OutcomeDraw
	}

	slog.Info("votes tallied", "outcome", outcome, "winners", len(winners))

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Outcome: outcome,
		Winners: proposalViews(winners),
	})
}

// Reset handles POST /reset
// Clears the whole cycle and returns to registering_voters.
func (h *PhaseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	caller, err := adminCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	if err := h.wf.Reset(caller); err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	persist(h.store, h.wf)
	h.metrics.RecordOperation("reset")

	slog.Info("voting process reset")

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Status: h.wf.Status().String(),
	})
}
