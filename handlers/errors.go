// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/metrics"
	"github.com/danielhkuo/ballotline/middleware"
)

// rejectionReason maps an engine error onto its taxonomy label
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, election.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, election.ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, election.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, election.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, election.ErrNoVoters):
		return "no_voters"
	case errors.Is(err, election.ErrNoProposals):
		return "no_proposals"
	case errors.Is(err, election.ErrDuplicateProposal):
		return "duplicate_proposal"
	case errors.Is(err, election.ErrInvalidProposalID):
		return "invalid_proposal_id"
	}
	return "internal"
}

// writeWorkflowError surfaces an engine rejection verbatim with the HTTP
// status matching its taxonomy case.
func writeWorkflowError(w http.ResponseWriter, m *metrics.Metrics, err error) {
	m.RecordRejection(rejectionReason(err))

	switch {
	case errors.Is(err, election.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, election.ErrWrongPhase),
		errors.Is(err, election.ErrAlreadyRegistered),
		errors.Is(err, election.ErrAlreadyVoted),
		errors.Is(err, election.ErrDuplicateProposal):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, election.ErrNoVoters),
		errors.Is(err, election.ErrNoProposals):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, election.ErrInvalidProposalID):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("unexpected workflow error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// writeCredentialError handles failures before a caller identity could be
// established (missing or invalid keys).
func writeCredentialError(w http.ResponseWriter, m *metrics.Metrics, err error) {
	m.RecordRejection("unauthorized")
	middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
}
