// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/election-ledger/auth"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/middleware"
)

// CodeUnauthenticated is returned when caller credentials are missing or wrong.
// It is distinct from the ledger's "unauthorized" (a valid caller lacking rights).
const CodeUnauthenticated = "unauthenticated"

// CodeInternal marks failures that are not part of the ledger's taxonomy
const CodeInternal = "internal"

var kindStatus = map[ledger.Kind]int{
	ledger.KindUnauthorized:     http.StatusForbidden,
	ledger.KindInvalidInput:     http.StatusBadRequest,
	ledger.KindAlreadyExists:    http.StatusConflict,
	ledger.KindNotFound:         http.StatusNotFound,
	ledger.KindElectionEnded:    http.StatusConflict,
	ledger.KindElectionNotEnded: http.StatusConflict,
	ledger.KindAlreadyVoted:     http.StatusConflict,
}

// StatusForKind returns the HTTP status a ledger error kind is reported with
func StatusForKind(kind ledger.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeLedgerError reports a registry error. Anything outside the taxonomy
// (a failed journal write, for instance) is logged and hidden behind a 500.
func writeLedgerError(w http.ResponseWriter, err error, action string) {
	var lerr *ledger.Error
	if !errors.As(err, &lerr) {
		slog.Error("failed to "+action, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to "+action)
		return
	}

	msg := lerr.Msg
	if msg == "" {
		msg = lerr.Kind.String()
	}
	middleware.CodedErrorResponse(w, StatusForKind(lerr.Kind), lerr.Kind.String(), msg)
}

// invalidInput reports a request the ledger never saw as invalid_input
func invalidInput(w http.ResponseWriter, msg string) {
	middleware.CodedErrorResponse(w, http.StatusBadRequest, ledger.KindInvalidInput.String(), msg)
}

// authenticateCaller resolves the caller from the X-Caller-ID and
// X-Caller-Key headers. On failure it writes a 401 and returns false.
func authenticateCaller(w http.ResponseWriter, r *http.Request, salt string) (ledger.Identity, bool) {
	identity, err := auth.Authenticate(
		r.Header.Get(auth.CallerIDHeader),
		r.Header.Get(auth.CallerKeyHeader),
		salt,
	)
	if err != nil {
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, CodeUnauthenticated, err.Error())
		return "", false
	}
	return ledger.Identity(identity), true
}

// electionIDFromPath parses the {id} path value. Zero is never a valid
// election id on the wire.
func electionIDFromPath(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		invalidInput(w, "election id is required")
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		invalidInput(w, "election id must be a positive integer")
		return 0, false
	}
	return id, true
}
