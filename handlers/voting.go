// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/election-ledger/auth"
	"github.com/danielhkuo/election-ledger/cliparse"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/middleware"
	"github.com/danielhkuo/election-ledger/models"
)

type VotingHandler struct {
	registry *ledger.Registry
	cfg      cliparse.Config
}

func NewVotingHandler(registry *ledger.Registry, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{registry: registry, cfg: cfg}
}

// Vote handles POST /elections/{id}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	voter, ok := authenticateCaller(w, r, h.cfg.CallerKeySalt)
	if !ok {
		return
	}

	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidInput(w, "Invalid JSON")
		return
	}

	if err := h.registry.Vote(voter, electionID, req.CandidateID); err != nil {
		if ledger.KindOf(err) == ledger.KindAlreadyVoted {
			slog.Warn("duplicate vote rejected", "election_id", electionID, "voter", voter)
		}
		writeLedgerError(w, err, "record vote")
		return
	}

	slog.Info("vote cast",
		"election_id", electionID,
		"candidate_id", req.CandidateID,
		"voter", voter,
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.CallerKeySalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		ElectionID:  electionID,
		CandidateID: req.CandidateID,
		Message:     "Vote recorded",
	})
}

// GetVoterStatus handles GET /elections/{id}/voters/{identity}
func (h *VotingHandler) GetVoterStatus(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}

	identity := r.PathValue("identity")
	if err := auth.ValidateIdentity(identity); err != nil {
		invalidInput(w, err.Error())
		return
	}

	voted, err := h.registry.HasVoted(electionID, ledger.Identity(identity))
	if err != nil {
		writeLedgerError(w, err, "check voter")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterStatusResponse{
		ElectionID: electionID,
		Identity:   identity,
		HasVoted:   voted,
	})
}

// VoterKey picks the rate-limit bucket for vote requests: the caller identity
// once its key checks out, otherwise empty so the client IP is used.
func (h *VotingHandler) VoterKey(r *http.Request) string {
	identity, err := auth.Authenticate(
		r.Header.Get(auth.CallerIDHeader),
		r.Header.Get(auth.CallerKeyHeader),
		h.cfg.CallerKeySalt,
	)
	if err != nil {
		return ""
	}
	return "caller:" + identity
}
