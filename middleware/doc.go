// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request gets an X-Request-ID (a UUID unless the client
sent one), echoed in the response and attached to both log lines.

# Rate Limiting

Per-key token buckets built on golang.org/x/time/rate:

	limiter := middleware.NewRateLimiter(cfg.VoteRate, cfg.VoteBurst)
	mux.HandleFunc("POST /elections/{id}/votes",
		middleware.WithLogging(middleware.WithRateLimit(limiter, h.VoterKey, h.Vote)))

Requests over the limit get 429 with code "rate_limited". Buckets idle for
ten minutes are dropped.

# CORS Middleware

Enable cross-origin requests for browser clients:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type, Authorization,
X-Caller-ID, X-Caller-Key, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.CodedErrorResponse(w, http.StatusConflict, "already_voted", "message")

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, "invalid_input", "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used as the rate limit key for anonymous requests and hashed into vote logs.
*/
package middleware
