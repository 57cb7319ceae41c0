// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/election-ledger/cliparse"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/middleware"
	"github.com/danielhkuo/election-ledger/models"
	"github.com/dustin/go-humanize"
)

type ElectionHandler struct {
	registry *ledger.Registry
	cfg      cliparse.Config
}

func NewElectionHandler(registry *ledger.Registry, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{registry: registry, cfg: cfg}
}

// GetAdmin handles GET /admin
func (h *ElectionHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.AdminResponse{
		Admin: string(h.registry.Admin()),
	})
}

// GetCount handles GET /elections/count
func (h *ElectionHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ElectionsCountResponse{
		Count: h.registry.ElectionsCount(),
	})
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticateCaller(w, r, h.cfg.CallerKeySalt)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidInput(w, "Invalid JSON")
		return
	}

	electionID, err := h.registry.CreateElection(caller, req.ElectionID, req.Name, req.DurationSeconds)
	if err != nil {
		writeLedgerError(w, err, "create election")
		return
	}

	info, err := h.registry.Election(electionID)
	if err != nil {
		writeLedgerError(w, err, "load election")
		return
	}

	slog.Info("election created",
		"election_id", electionID,
		"name", info.Name,
		"candidates", info.CandidateCount,
		"closes", humanize.RelTime(info.End, info.Start, "ago", "from now"),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		StartTime:  info.Start,
		EndTime:    info.End,
	})
}

// AddCandidate handles POST /elections/{id}/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticateCaller(w, r, h.cfg.CallerKeySalt)
	if !ok {
		return
	}

	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidInput(w, "Invalid JSON")
		return
	}

	candidateID, err := h.registry.AddCandidate(caller, electionID, req.Name)
	if err != nil {
		writeLedgerError(w, err, "add candidate")
		return
	}

	slog.Info("candidate staged", "election_id", electionID, "candidate_id", candidateID, "name", strings.TrimSpace(req.Name))

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		ElectionID:  electionID,
		CandidateID: candidateID,
	})
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDFromPath(w, r)
	if !ok {
		return
	}

	info, err := h.registry.Election(electionID)
	if err != nil {
		writeLedgerError(w, err, "load election")
		return
	}

	resp := models.Election{
		ID:             info.ID,
		Name:           info.Name,
		Status:         string(info.Status),
		CandidateCount: info.CandidateCount,
		VotesCast:      info.VotesCast,
	}
	if info.Status != ledger.StatusUnscheduled {
		start, end := info.Start, info.End
		resp.StartTime = &start
		resp.EndTime = &end
	}
	if info.Status == ledger.StatusOpen {
		resp.ClosesIn = humanize.RelTime(info.End, info.AsOf, "ago", "from now")
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
