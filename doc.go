// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballotline API server.

Ballotline is an organizational voting workflow: an administrator registers
voters, voters submit proposals and cast single votes, and the system
tallies results, supporting ties.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:ballotline.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin/voter key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_IDENTITY (--admin-id): Administrator identity (default: admin)

# Architecture

The server wraps a single in-memory workflow engine with an HTTP surface:

  - election: the workflow engine (phase machine, registry, tally)
  - events: synchronous notification signals
  - handlers: HTTP request handlers, one route per operation
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: HMAC key generation and validation
  - db: Snapshot persistence (sqlite or postgres)
  - metrics: Prometheus counters
  - cliparse: Configuration parsing

The engine serializes all operations; the db store flushes a snapshot
after each mutation and restores it at startup.

See package documentation for each component.
*/
package main
