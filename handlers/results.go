// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
	"github.com/danielhkuo/ballotline/models"
)

type ResultsHandler struct {
	wf      *election.Workflow
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewResultsHandler(wf *election.Workflow, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *ResultsHandler {
	return &ResultsHandler{wf: wf, store: store, cfg: cfg, metrics: m}
}

// Winners handles GET /winners
// Public: anyone can read the winning set once votes are tallied.
func (h *ResultsHandler) Winners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.wf.Winners()
	if err != nil {
		writeWorkflowError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnersResponse{
		Winners: proposalViews(winners),
	})
}

// Status handles GET /status
// Public: the current lifecycle phase.
func (h *ResultsHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status: h.wf.Status().String(),
	})
}
