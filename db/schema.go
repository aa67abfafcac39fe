// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotline/cliparse"
)

// Open connects to the configured database. The schema is portable across
// both supported engines, so everything above the driver name is shared.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "sqlite"
	if cfg.DatabaseType == cliparse.DBTypePostgres {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}
	if driver == "sqlite" {
		// Single writer; also keeps :memory: databases on one connection
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the snapshot store.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Singleton workflow record: status and administrator identity
CREATE TABLE IF NOT EXISTS workflow_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    admin_identity TEXT NOT NULL,
    status INTEGER NOT NULL,
    saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Voter registry, position preserves registration order
CREATE TABLE IF NOT EXISTS voter (
    identity TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_proposal_id INTEGER
);

CREATE INDEX IF NOT EXISTS idx_voter_position ON voter(position);

-- Proposals, id is the engine's zero-based insertion index
CREATE TABLE IF NOT EXISTS proposal (
    id INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0
);

-- Winning set, valid only while status is votes_tallied
CREATE TABLE IF NOT EXISTS winner (
    position INTEGER PRIMARY KEY,
    proposal_id INTEGER NOT NULL,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL
);
`
