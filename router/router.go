// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/handlers"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
)

func NewRouter(wf *election.Workflow, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(wf, store, cfg, m)
	proposalHandler := handlers.NewProposalHandler(wf, store, cfg, m)
	voteHandler := handlers.NewVoteHandler(wf, store, cfg, m)
	phaseHandler := handlers.NewPhaseHandler(wf, store, cfg, m)
	resultsHandler := handlers.NewResultsHandler(wf, store, cfg, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Voter registry (admin operations)
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("GET /voters/{id}", middleware.WithLogging(voterHandler.Get))

	// Proposals (voter operations and queries)
	mux.HandleFunc("POST /proposals", middleware.WithLogging(proposalHandler.Make))
	mux.HandleFunc("GET /proposals", middleware.WithLogging(proposalHandler.List))
	mux.HandleFunc("GET /proposals/{id}", middleware.WithLogging(proposalHandler.Get))

	// Voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.Cast))

	// Lifecycle (admin operations)
	mux.HandleFunc("POST /phase/proposals/start", middleware.WithLogging(phaseHandler.StartProposals))
	mux.HandleFunc("POST /phase/proposals/end", middleware.WithLogging(phaseHandler.EndProposals))
	mux.HandleFunc("POST /phase/voting/start", middleware.WithLogging(phaseHandler.StartVoting))
	mux.HandleFunc("POST /phase/voting/end", middleware.WithLogging(phaseHandler.EndVoting))
	mux.HandleFunc("POST /tally", middleware.WithLogging(phaseHandler.Tally))
	mux.HandleFunc("POST /reset", middleware.WithLogging(phaseHandler.Reset))

	// Results (public)
	mux.HandleFunc("GET /winners", middleware.WithLogging(resultsHandler.Winners))
	mux.HandleFunc("GET /status", middleware.WithLogging(resultsHandler.Status))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotline API v1"))
	})

	return mux
}
