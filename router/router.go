// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/election-ledger/cliparse"
	"github.com/danielhkuo/election-ledger/handlers"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/middleware"
)

func NewRouter(registry *ledger.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(registry, cfg)
	votingHandler := handlers.NewVotingHandler(registry, cfg)
	resultsHandler := handlers.NewResultsHandler(registry, cfg)
	callerHandler := handlers.NewCallerHandler(registry, cfg)

	voteLimiter := middleware.NewRateLimiter(cfg.VoteRate, cfg.VoteBurst)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Registry metadata (public)
	mux.HandleFunc("GET /admin", middleware.WithLogging(electionHandler.GetAdmin))
	mux.HandleFunc("GET /elections/count", middleware.WithLogging(electionHandler.GetCount))

	// Election management (admin only, enforced by the registry)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(electionHandler.AddCandidate))
	mux.HandleFunc("POST /callers", middleware.WithLogging(callerHandler.IssueKey))

	// Voting (any authenticated caller)
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(
		middleware.WithRateLimit(voteLimiter, votingHandler.VoterKey, votingHandler.Vote),
	))
	mux.HandleFunc("GET /elections/{id}/voters/{identity}", middleware.WithLogging(votingHandler.GetVoterStatus))

	// Election info and results (public)
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("GET /elections/{id}/candidates", middleware.WithLogging(resultsHandler.GetAllCandidates))
	mux.HandleFunc("GET /elections/{id}/winner", middleware.WithLogging(resultsHandler.GetWinner))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("election-ledger API v1"))
	})

	return mux
}
