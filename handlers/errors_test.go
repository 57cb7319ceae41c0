// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/testutil"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind     ledger.Kind
		expected int
	}{
		{ledger.KindUnauthorized, http.StatusForbidden},
		{ledger.KindInvalidInput, http.StatusBadRequest},
		{ledger.KindAlreadyExists, http.StatusConflict},
		{ledger.KindNotFound, http.StatusNotFound},
		{ledger.KindElectionEnded, http.StatusConflict},
		{ledger.KindElectionNotEnded, http.StatusConflict},
		{ledger.KindAlreadyVoted, http.StatusConflict},
		{ledger.KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := StatusForKind(tt.kind); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteLedgerError(t *testing.T) {
	t.Run("wrapped ledger error", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := fmt.Errorf("vote: %w", &ledger.Error{Kind: ledger.KindAlreadyVoted, Msg: "bob already voted"})
		writeLedgerError(w, err, "record vote")
		testutil.AssertErrorCode(t, w, http.StatusConflict, "already_voted")
	})

	t.Run("journal failure is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeLedgerError(w, errors.New("disk full"), "record vote")
		testutil.AssertErrorCode(t, w, http.StatusInternalServerError, CodeInternal)
	})
}
