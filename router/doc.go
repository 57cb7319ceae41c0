// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the election ledger API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(registry, cfg)

# Endpoints

Health:

	GET /health

Registry metadata:

	GET /admin            - Admin identity
	GET /elections/count  - Number of created elections

Election management (requires X-Caller-ID and X-Caller-Key of the admin):

	POST /elections                 - Create election from staged candidates
	POST /elections/{id}/candidates - Stage a candidate
	POST /callers                   - Issue a caller key

Voting (any authenticated caller, rate limited per caller):

	POST /elections/{id}/votes             - Cast the caller's vote
	GET  /elections/{id}/voters/{identity} - Whether identity has voted

Results (public):

	GET /elections/{id}            - Election info and status
	GET /elections/{id}/candidates - Candidate ids, names and tallies
	GET /elections/{id}/winner     - Winner (after the deadline)

The vote route is throttled with middleware.WithRateLimit using
cfg.VoteRate and cfg.VoteBurst; one limiter is shared by all requests
served by the returned mux.
*/
package router
