// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/ballotline/election"
)

// Store persists workflow snapshots. The whole snapshot is rewritten in one
// transaction per save; state is one election cycle, so the write is tiny
// and the store can never hold a half-applied mutation.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the stored snapshot with snap
func (s *Store) Save(snap election.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"winner", "proposal", "voter", "workflow_state"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO workflow_state (id, admin_identity, status, saved_at)
		VALUES (1, $1, $2, CURRENT_TIMESTAMP)
	`, snap.Admin, int(snap.Status))
	if err != nil {
		return fmt.Errorf("failed to save workflow state: %w", err)
	}

	for position, identity := range snap.VoterIDs {
		voter := snap.Voters[identity]

		var votedID sql.NullInt64
		if voter.HasVoted {
			votedID = sql.NullInt64{Int64: int64(voter.VotedProposalID), Valid: true}
		}

		_, err = tx.Exec(`
			INSERT INTO voter (identity, position, has_voted, voted_proposal_id)
			VALUES ($1, $2, $3, $4)
		`, identity, position, voter.HasVoted, votedID)
		if err != nil {
			return fmt.Errorf("failed to save voter %s: %w", identity, err)
		}
	}

	for _, p := range snap.Proposals {
		_, err = tx.Exec(`
			INSERT INTO proposal (id, description, vote_count)
			VALUES ($1, $2, $3)
		`, p.ID, p.Description, int64(p.VoteCount))
		if err != nil {
			return fmt.Errorf("failed to save proposal %d: %w", p.ID, err)
		}
	}

	for position, p := range snap.Winners {
		_, err = tx.Exec(`
			INSERT INTO winner (position, proposal_id, description, vote_count)
			VALUES ($1, $2, $3, $4)
		`, position, p.ID, p.Description, int64(p.VoteCount))
		if err != nil {
			return fmt.Errorf("failed to save winner %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. The second return value is false when the
// store is empty (fresh installation).
func (s *Store) Load() (election.Snapshot, bool, error) {
	var snap election.Snapshot
	var status int

	err := s.db.QueryRow(`
		SELECT admin_identity, status FROM workflow_state WHERE id = 1
	`).Scan(&snap.Admin, &status)
	if err == sql.ErrNoRows {
		return election.Snapshot{}, false, nil
	}
	if err != nil {
		return election.Snapshot{}, false, fmt.Errorf("failed to load workflow state: %w", err)
	}
	snap.Status = election.Status(status)
	snap.Voters = make(map[string]election.Voter)

	rows, err := s.db.Query(`
		SELECT identity, has_voted, voted_proposal_id
		FROM voter
		ORDER BY position
	`)
	if err != nil {
		return election.Snapshot{}, false, fmt.Errorf("failed to load voters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var identity string
		var hasVoted bool
		var votedID sql.NullInt64
		if err := rows.Scan(&identity, &hasVoted, &votedID); err != nil {
			return election.Snapshot{}, false, fmt.Errorf("failed to scan voter: %w", err)
		}

		voter := election.Voter{Registered: true, HasVoted: hasVoted}
		if votedID.Valid {
			voter.VotedProposalID = int(votedID.Int64)
		}
		snap.VoterIDs = append(snap.VoterIDs, identity)
		snap.Voters[identity] = voter
	}
	if err := rows.Err(); err != nil {
		return election.Snapshot{}, false, fmt.Errorf("failed to read voters: %w", err)
	}

	snap.Proposals, err = s.queryProposals(`
		SELECT id, description, vote_count FROM proposal ORDER BY id
	`)
	if err != nil {
		return election.Snapshot{}, false, fmt.Errorf("failed to load proposals: %w", err)
	}

	snap.Winners, err = s.queryProposals(`
		SELECT proposal_id, description, vote_count FROM winner ORDER BY position
	`)
	if err != nil {
		return election.Snapshot{}, false, fmt.Errorf("failed to load winners: %w", err)
	}

	return snap, true, nil
}

func (s *Store) queryProposals(query string) ([]election.Proposal, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []election.Proposal
	for rows.Next() {
		var p election.Proposal
		var count int64
		if err := rows.Scan(&p.ID, &p.Description, &count); err != nil {
			return nil, err
		}
		p.VoteCount = uint(count)
		proposals = append(proposals, p)
	}

	return proposals, rows.Err()
}
