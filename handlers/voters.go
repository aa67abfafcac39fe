// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotline/auth"
	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
	"github.com/danielhkuo/ballotline/models"
)

type VoterHandler struct {
	wf      *election.Workflow
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewVoterHandler(wf *election.Workflow, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *VoterHandler {
	return &VoterHandler{wf: wf, store: store, cfg: cfg, metrics: m}
}

// Register handles POST /voters
// Registers a voter identity and returns the voter key that proves it.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	caller, err := adminCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}
	if req.Identity == h.cfg.AdminIdentity {
		middleware.ErrorResponse(w, http.StatusBadRequest, "administrator cannot be registered as a voter")
		return
	}

	if err := h.wf.RegisterVoter(caller, req.Identity); err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	persist(h.store, h.wf)
	h.metrics.RecordOperation("register_voter")

	slog.Info("voter registered", "identity", req.Identity)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		Identity: req.Identity,
		VoterKey: auth.GenerateVoterKey(req.Identity, h.cfg.AdminKeySalt),
	})
}

// Get handles GET /voters/{id}
// Returns the registry record for an identity. Administrator, or a voter
// looking up their own record.
func (h *VoterHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("id")
	if identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	caller, err := resolveCaller(r, h.cfg)
	if err != nil {
		writeCredentialError(w, h.metrics, err)
		return
	}

	voter, err := h.wf.VoterRecord(caller, identity)
	if err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}
	if !voter.Registered {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not registered")
		return
	}

	view := models.VoterView{
		Identity:   identity,
		Registered: voter.Registered,
		HasVoted:   voter.HasVoted,
	}
	if voter.HasVoted {
		id := voter.VotedProposalID
		view.VotedProposalID = &id
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}
