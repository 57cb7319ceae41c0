// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// driver names registered by lib/pq and modernc.org/sqlite
var drivers = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite",
}

// Open connects to the journal database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	driver, ok := drivers[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if dbType == "sqlite" {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Valid for both PostgreSQL and SQLite. Times are unix nanoseconds.
const schema = `
-- Accepted registry mutations, in application order
CREATE TABLE IF NOT EXISTS ledger_event (
    seq BIGINT PRIMARY KEY,
    event_id TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL CHECK (kind IN ('candidate_added', 'election_created', 'vote_cast')),
    caller TEXT NOT NULL,
    election_id BIGINT NOT NULL,
    candidate_id BIGINT NOT NULL DEFAULT 0,
    name TEXT NOT NULL DEFAULT '',
    duration_seconds BIGINT NOT NULL DEFAULT 0,
    occurred_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_event_election ON ledger_event(election_id);

-- One election_created per election id, one vote per caller per election
CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_event_created ON ledger_event(election_id) WHERE kind = 'election_created';
CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_event_vote ON ledger_event(election_id, caller) WHERE kind = 'vote_cast';
`
