// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the election ledger API server.

The ledger lets a single administrator stage candidates and open elections
with a fixed deadline. Every authenticated caller may vote once per
election, and once the deadline passes anyone can ask for the winner.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_IDENTITY=admin CALLER_KEY_SALT=secret go run .

Or with flags, journaling to SQLite:

	go run . -p 3318 -admin admin -caller-salt secret -d ledger.db

Variables may also come from a .env file (see -env).

# Configuration

Required settings:

  - ADMIN_IDENTITY (-admin): Identity allowed to stage candidates and create elections
  - CALLER_KEY_SALT (-caller-salt): Secret for caller key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Journal location; empty keeps state in memory
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - VOTE_RATE, VOTE_BURST (-vote-rate, -vote-burst): Per-caller vote throttling
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - ledger: The election registry state machine
  - handlers: HTTP request handlers (elections, voting, results, callers)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - models: Request/response types
  - auth: Caller key generation and validation
  - db: Journal schema, recording and replay
  - cliparse: Configuration parsing
  - client: Typed HTTP client
  - cmd/electionctl: Command-line client

See package documentation for each component.
*/
package main
