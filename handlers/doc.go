// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the election ledger API.

# Handler Types

Each handler is a struct holding the shared *ledger.Registry and the config:

  - ElectionHandler: admin identity, election count, staging and creation
  - VotingHandler: vote casting and per-voter status
  - ResultsHandler: candidate tallies and the winner
  - CallerHandler: issuing caller keys

	electionHandler := handlers.NewElectionHandler(registry, cfg)

# Authentication

Mutating requests carry X-Caller-ID and X-Caller-Key. A missing or wrong key
is answered with 401 and code "unauthenticated". Whether an authenticated
caller may do something is decided by the registry; a refusal comes back as
403 "unauthorized".

# Election Lifecycle

	POST /elections/{id}/candidates → AddCandidate (admin, stages a candidate)
	POST /elections                 → CreateElection (admin, freezes the roster)
	POST /elections/{id}/votes      → Vote (any caller, once per election)
	GET  /elections/{id}/winner     → GetWinner (after the deadline)

# Errors

Registry errors are written as models.ErrorResponse with the ledger kind as
Code. See StatusForKind for the HTTP status of each kind.
*/
package handlers
