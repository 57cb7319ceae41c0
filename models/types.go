package models

import "time"

// Election status values, mirroring ledger.Status
const (
	StatusUnscheduled = "unscheduled"
	StatusOpen        = "open"
	StatusClosed      = "closed"
)

// Request types

type CreateElectionRequest struct {
	ElectionID      uint64 `json:"election_id,omitempty"` // 0 = next free id
	Name            string `json:"name"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type AddCandidateRequest struct {
	Name string `json:"name"`
}

type VoteRequest struct {
	CandidateID uint64 `json:"candidate_id"`
}

type IssueCallerKeyRequest struct {
	Identity string `json:"identity"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID uint64    `json:"election_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

type AddCandidateResponse struct {
	ElectionID  uint64 `json:"election_id"`
	CandidateID uint64 `json:"candidate_id"`
}

type VoteResponse struct {
	ElectionID  uint64 `json:"election_id"`
	CandidateID uint64 `json:"candidate_id"`
	Message     string `json:"message"`
}

type VoterStatusResponse struct {
	ElectionID uint64 `json:"election_id"`
	Identity   string `json:"identity"`
	HasVoted   bool   `json:"has_voted"`
}

// Three parallel arrays in registration order
type CandidatesResponse struct {
	ElectionID uint64   `json:"election_id"`
	IDs        []uint64 `json:"ids"`
	Names      []string `json:"names"`
	VoteCounts []uint64 `json:"vote_counts"`
}

type WinnerResponse struct {
	ElectionID uint64 `json:"election_id"`
	Name       string `json:"name"`
	ID         uint64 `json:"id"`
	VoteCount  uint64 `json:"vote_count"`
}

type ElectionsCountResponse struct {
	Count uint64 `json:"count"`
}

type AdminResponse struct {
	Admin string `json:"admin"`
}

type IssueCallerKeyResponse struct {
	Identity  string `json:"identity"`
	CallerKey string `json:"caller_key"`
}

// Domain types

type Election struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name,omitempty"`
	Status         string     `json:"status"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	ClosesIn       string     `json:"closes_in,omitempty"` // e.g. "9 seconds from now"
	CandidateCount int        `json:"candidate_count"`
	VotesCast      uint64     `json:"votes_cast"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
