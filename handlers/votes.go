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

type VoteHandler struct {
	wf      *election.Workflow
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewVoteHandler(wf *election.Workflow, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *VoteHandler {
	return &VoteHandler{wf: wf, store: store, cfg: cfg, metrics: m}
}

// Cast handles POST /votes
// Records the caller's single vote for a proposal.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	caller, err := voterCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	if err := h.wf.VoteForProposal(caller, *req.ProposalID); err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	persist(h.store, h.wf)
	h.metrics.RecordOperation("vote")
	h.metrics.RecordVote()

	slog.Info("vote cast", "voter", caller, "proposal_id", *req.ProposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		ProposalID: *req.ProposalID,
		Message:    "Vote recorded",
	})
}
