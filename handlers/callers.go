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

// CallerHandler lets the admin hand out caller keys to voters
type CallerHandler struct {
	registry *ledger.Registry
	cfg      cliparse.Config
}

func NewCallerHandler(registry *ledger.Registry, cfg cliparse.Config) *CallerHandler {
	return &CallerHandler{registry: registry, cfg: cfg}
}

// IssueKey handles POST /callers
func (h *CallerHandler) IssueKey(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticateCaller(w, r, h.cfg.CallerKeySalt)
	if !ok {
		return
	}

	if caller != h.registry.Admin() {
		middleware.CodedErrorResponse(w, http.StatusForbidden, ledger.KindUnauthorized.String(), "only the admin can issue caller keys")
		return
	}

	var req models.IssueCallerKeyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidInput(w, "Invalid JSON")
		return
	}

	if err := auth.ValidateIdentity(req.Identity); err != nil {
		invalidInput(w, err.Error())
		return
	}

	slog.Info("caller key issued", "identity", req.Identity)

	middleware.JSONResponse(w, http.StatusCreated, models.IssueCallerKeyResponse{
		Identity:  req.Identity,
		CallerKey: auth.GenerateCallerKey(req.Identity, h.cfg.CallerKeySalt),
	})
}
