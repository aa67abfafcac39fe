// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists workflow snapshots between restarts.

# Opening a Database

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg) // sqlite (modernc, cgo-free) or postgres (lib/pq)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL is deliberately restricted to the dialect both engines
share.

# Tables

The schema mirrors the engine's four durable state records:

  - workflow_state: singleton row with status and administrator identity
  - voter: registry entries, position keeps registration order
  - proposal: the ordered proposal list with vote counts
  - winner: the winning set, valid only while votes are tallied

# Snapshot Store

The Store rewrites the whole snapshot in a single transaction after each
successful mutation and reads it back at startup:

	store := db.NewStore(conn)
	err := store.Save(wf.Snapshot())
	snap, ok, err := store.Load()

Load returns ok == false on a fresh database so the host can construct a
new workflow instead.
*/
package db
