// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: election_id (optional), name, duration_seconds
  - AddCandidateRequest: name
  - VoteRequest: candidate_id
  - IssueCallerKeyRequest: identity

# Response Types

Types for JSON responses:

  - CreateElectionResponse: election_id, start_time, end_time
  - AddCandidateResponse: election_id, candidate_id
  - VoteResponse: election_id, candidate_id, message
  - VoterStatusResponse: election_id, identity, has_voted
  - CandidatesResponse: ids, names, vote_counts (parallel arrays)
  - WinnerResponse: name, id, vote_count
  - ElectionsCountResponse: count
  - AdminResponse: admin
  - IssueCallerKeyResponse: identity, caller_key
  - ErrorResponse: error, code, message

ErrorResponse.Code carries the ledger error kind (not_found, already_voted,
...) so clients can branch without parsing messages.

# Domain Types

  - Election: summary of one election id and its lifecycle state

# Constants

Status values:

	StatusUnscheduled = "unscheduled"
	StatusOpen        = "open"
	StatusClosed      = "closed"
*/
package models
