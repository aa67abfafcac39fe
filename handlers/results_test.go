// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/models"
	"github.com/danielhkuo/ballotline/testutil"
)

// talliedWorkflow runs the single-winner scenario: 3 voters, 5 proposals,
// votes (v1→0, v2→0, v3→3).
func talliedWorkflow(t *testing.T, adminIdentity string) *election.Workflow {
	t.Helper()

	wf := election.New(adminIdentity, nil)
	testutil.AdvanceToVoting(t, wf, []string{"v1", "v2", "v3"}, 5)
	for voter, id := range map[string]int{"v1": 0, "v2": 0, "v3": 3} {
		if err := wf.VoteForProposal(voter, id); err != nil {
			t.Fatalf("Failed to cast vote: %v", err)
		}
	}
	if err := wf.EndVotingSession(adminIdentity); err != nil {
		t.Fatalf("Failed to end voting: %v", err)
	}
	if _, err := wf.CountVotes(adminIdentity); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return wf
}

func TestGetWinners(t *testing.T) {
	cfg := testutil.GetTestConfig()
	wf := talliedWorkflow(t, cfg.AdminIdentity)
	h := NewResultsHandler(wf, nil, cfg, testutil.NewTestMetrics())

	// No credentials needed: winners are public once tallied
	req := testutil.MakeRequest("GET", "/winners", nil, nil)
	w := httptest.NewRecorder()

	h.Winners(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.WinnersResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Winners) != 1 {
		t.Fatalf("Expected 1 winner, got %d", len(resp.Winners))
	}
	if resp.Winners[0].Description != "Proposal 1" || resp.Winners[0].VoteCount != 2 {
		t.Errorf("Unexpected winner: %+v", resp.Winners[0])
	}
}

func TestGetWinners_BeforeTally(t *testing.T) {
	cfg := testutil.GetTestConfig()
	wf := election.New(cfg.AdminIdentity, nil)
	h := NewResultsHandler(wf, nil, cfg, testutil.NewTestMetrics())

	req := testutil.MakeRequest("GET", "/winners", nil, nil)
	w := httptest.NewRecorder()

	h.Winners(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestGetStatus(t *testing.T) {
	cfg := testutil.GetTestConfig()
	wf := election.New(cfg.AdminIdentity, nil)
	h := NewResultsHandler(wf, nil, cfg, testutil.NewTestMetrics())

	req := testutil.MakeRequest("GET", "/status", nil, nil)
	w := httptest.NewRecorder()

	h.Status(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != "registering_voters" {
		t.Errorf("Expected registering_voters, got %s", resp.Status)
	}
}
