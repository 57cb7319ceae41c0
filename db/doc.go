// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the ledger as an append-only event journal.

# Connecting

Open maps the configured database type to a driver and pings it:

	conn, err := db.Open("postgres", "postgres://...") // github.com/lib/pq
	conn, err := db.Open("sqlite", "file:ledger.db")   // modernc.org/sqlite

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes the journal table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.

# Tables

  - ledger_event: one row per accepted registry mutation (candidate_added,
    election_created, vote_cast), keyed by a gapless sequence number and a
    UUID event id

Partial unique indexes back the registry's own rules: one election_created
row per election id and one vote_cast row per (election_id, caller).

# Journal

Journal implements ledger.Recorder. On startup, replay before attaching:

	journal := db.NewJournal(conn)
	n, err := db.Restore(ctx, journal, registry)
	registry.SetRecorder(journal)

Each Record call inserts one row; if the insert fails the registry drops the
mutation and the caller sees the error.
*/
package db
