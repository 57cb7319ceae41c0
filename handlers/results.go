// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/election-ledger/cliparse"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/middleware"
	"github.com/danielhkuo/election-ledger/models"
)

type ResultsHandler struct {
	registry *ledger.Registry
	cfg      cliparse.Config
}

func NewResultsHandler(registry *ledger.Registry, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{registry: registry, cfg: cfg}
}

// GetAllCandidates handles GET /elections/{id}/candidates
// Tallies are visible while the election is still open.
func (h *ResultsHandler) GetAllCandidates(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}

	ids, names, counts, err := h.registry.GetAllCandidates(electionID)
	if err != nil {
		writeLedgerError(w, err, "list candidates")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		ElectionID: electionID,
		IDs:        ids,
		Names:      names,
		VoteCounts: counts,
	})
}

// GetWinner handles GET /elections/{id}/winner
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}

	winner, err := h.registry.WinningElection(electionID)
	if err != nil {
		writeLedgerError(w, err, "compute winner")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		ElectionID: electionID,
		Name:       winner.Name,
		ID:         winner.ID,
		VoteCount:  winner.VoteCount,
	})
}
