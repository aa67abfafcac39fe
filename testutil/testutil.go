// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotline/auth"
	"github.com/danielhkuo/ballotline/cliparse"
	"github.com/danielhkuo/ballotline/db"
	"github.com/danielhkuo/ballotline/election"
	"github.com/danielhkuo/ballotline/metrics"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3319,
		DatabaseURL:   ":memory:",
		DatabaseType:  cliparse.DBTypeSQLite,
		AdminKeySalt:  "test-admin-salt",
		AdminIdentity: "admin",
	}
}

// SetupTestStore creates a fresh in-memory sqlite snapshot store
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A pooled second connection would see its own empty :memory: database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewStore(conn)
}

// NewTestMetrics returns metrics bound to a throwaway registry, so tests
// never collide on the default one.
func NewTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// AdminHeaders returns the credential headers for the administrator
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Admin-Key": auth.GenerateAdminKey(cfg.AdminIdentity, cfg.AdminKeySalt),
	}
}

// VoterHeaders returns the credential headers for a voter identity
func VoterHeaders(cfg cliparse.Config, identity string) map[string]string {
	return map[string]string{
		"X-Voter-ID":  identity,
		"X-Voter-Key": auth.GenerateVoterKey(identity, cfg.AdminKeySalt),
	}
}

// RegisterTestVoters registers the given identities on a fresh workflow
func RegisterTestVoters(t *testing.T, wf *election.Workflow, identities ...string) {
	t.Helper()

	for _, identity := range identities {
		if err := wf.RegisterVoter(wf.Admin(), identity); err != nil {
			t.Fatalf("Failed to register test voter %s: %v", identity, err)
		}
	}
}

// AdvanceToVoting drives a workflow from registering_voters to
// voting_session_started with the given voters and numbered proposals
// ("Proposal 1".."Proposal N") submitted by the first voter.
func AdvanceToVoting(t *testing.T, wf *election.Workflow, voters []string, proposalCount int) {
	t.Helper()

	RegisterTestVoters(t, wf, voters...)
	admin := wf.Admin()

	if err := wf.StartProposalsRegistration(admin); err != nil {
		t.Fatalf("Failed to start proposals registration: %v", err)
	}
	for i := 0; i < proposalCount; i++ {
		if _, err := wf.MakeProposal(voters[0], fmt.Sprintf("Proposal %d", i+1)); err != nil {
			t.Fatalf("Failed to make test proposal: %v", err)
		}
	}
	if err := wf.EndProposalsRegistration(admin); err != nil {
		t.Fatalf("Failed to end proposals registration: %v", err)
	}
	if err := wf.StartVotingSession(admin); err != nil {
		t.Fatalf("Failed to start voting session: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
