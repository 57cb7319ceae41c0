// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Journal database; empty keeps state in memory only
  - DatabaseType: sqlite (default) or postgres
  - AdminIdentity: The single identity allowed to stage candidates and create elections (required)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - VoteRate, VoteBurst: Per-caller vote throttle (default: 5/s, burst 10)
  - LogLevel: slog level (default: info)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-env          Dotenv file (default: .env, ignored if missing)
	-admin        Admin identity
	-caller-salt  Caller key salt
	-vote-rate    Votes per second per caller
	-vote-burst   Vote burst per caller
	-log-level    debug, info, warn or error

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_IDENTITY  → -admin
	CALLER_KEY_SALT → -caller-salt
	VOTE_RATE       → -vote-rate
	VOTE_BURST      → -vote-burst
	LOG_LEVEL       → -log-level

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the dotenv file.
*/
package cliparse
