// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
	"github.com/danielhkuo/ballotline/models"
)

type ProposalHandler struct {
	wf      *election.Workflow
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewProposalHandler(wf *election.Workflow, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *ProposalHandler {
	return &ProposalHandler{wf: wf, store: store, cfg: cfg, metrics: m}
}

// Make handles POST /proposals
// Submits a proposal; registered voters only, during proposal registration.
func (h *ProposalHandler) Make(w http.ResponseWriter, r *http.Request) {
	caller, err := voterCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	var req models.MakeProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	id, err := h.wf.MakeProposal(caller, req.Description)
	if err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	persist(h.store, h.wf)
	h.metrics.RecordOperation("make_proposal")

	slog.Info("proposal registered", "proposal_id", id, "voter", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.MakeProposalResponse{
		ProposalID: id,
	})
}

// List handles GET /proposals
// Returns all proposals in id order. Administrator or registered voters,
// once proposal registration has ended.
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	proposals, err := h.wf.Proposals(caller)
	if err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposalViews(proposals))
}

// Get handles GET /proposals/{id}
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be an integer")
		return
	}

	caller, err := resolveCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	proposal, err := h.wf.ProposalByID(caller, id)
	if err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposalView(proposal))
}
