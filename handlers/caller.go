// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotline/auth"
	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/models"
)

var (
	errMissingAdminKey  = errors.New("X-Admin-Key header required")
	errMissingVoterCred = errors.New("X-Voter-ID and X-Voter-Key headers required")
)

// adminCaller validates the X-Admin-Key header and returns the
// administrator identity the engine expects.
func adminCaller(r *http.Request, cfg cliparse.Config) (string, error) {
	key := r.Header.Get("X-Admin-Key")
	if key == "" {
		return "", errMissingAdminKey
	}
	if err := auth.ValidateAdminKey(cfg.AdminIdentity, key, cfg.AdminKeySalt); err != nil {
		return "", err
	}
	return cfg.AdminIdentity, nil
}

// voterCaller validates the X-Voter-ID / X-Voter-Key header pair and
// returns the voter identity. The key only proves the caller owns the
// identity; whether the identity is registered is the engine's call.
func voterCaller(r *http.Request, cfg cliparse.Config) (string, error) {
	identity := r.Header.Get("X-Voter-ID")
	key := r.Header.Get("X-Voter-Key")
	if identity == "" || key == "" {
		return "", errMissingVoterCred
	}
	if err := auth.ValidateVoterKey(identity, key, cfg.AdminKeySalt); err != nil {
		return "", err
	}
	return identity, nil
}

// resolveCaller accepts either credential kind, for endpoints open to the
// administrator and registered voters alike.
func resolveCaller(r *http.Request, cfg cliparse.Config) (string, error) {
	if r.Header.Get("X-Admin-Key") != "" {
		return adminCaller(r, cfg)
	}
	return voterCaller(r, cfg)
}

// persist flushes the workflow snapshot after a successful mutation.
// Persistence failures are logged, not surfaced: the mutation has already
// applied and the engine remains the source of truth until the next flush.
func persist(store *db.Store, wf *election.Workflow) {
	if store == nil {
		return
	}
	if err := store.Save(wf.Snapshot()); err != nil {
		slog.Error("failed to persist workflow snapshot", "error", err)
	}
}

func proposalView(p election.Proposal) models.ProposalView {
	return models.ProposalView{
		ID:          p.ID,
		Description: p.Description,
		VoteCount:   p.VoteCount,
	}
}

// proposalViews always returns a non-nil slice so JSON renders [] instead
// of null.
func proposalViews(proposals []election.Proposal) []models.ProposalView {
	views := make([]models.ProposalView, 0, len(proposals))
	for _, p := range proposals {
		views = append(views, proposalView(p))
	}
	return views
}
