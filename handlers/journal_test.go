// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/election-ledger/db"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/models"
	"github.com/danielhkuo/election-ledger/testutil"
)

type failingRecorder struct{}

func (failingRecorder) Record(ledger.Event) error {
	return errors.New("journal offline")
}

func TestVoteJournalFailure(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.NewTestRegistry(t, cfg)
	handler := NewVotingHandler(reg, cfg)
	testutil.CreateTestElection(t, reg, 1, time.Minute, "Alice")
	reg.SetRecorder(failingRecorder{})

	req := testutil.MakeRequest("POST", "/elections/1/votes", models.VoteRequest{CandidateID: 1}, testutil.CallerHeaders(cfg, "bob"))
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.Vote(w, req)

	testutil.AssertErrorCode(t, w, http.StatusInternalServerError, CodeInternal)

	voted, _ := reg.HasVoted(1, "bob")
	if voted {
		t.Error("Vote was applied although the journal rejected it")
	}
}

func TestHandlersWriteJournal(t *testing.T) {
	cfg := testutil.GetTestConfig()
	conn := testutil.SetupTestDB(t)
	journal := db.NewJournal(conn)

	reg, clock := testutil.NewTestRegistry(t, cfg)
	reg.SetRecorder(journal)

	elections := NewElectionHandler(reg, cfg)
	voting := NewVotingHandler(reg, cfg)

	for _, name := range []string{"Alice", "Bob"} {
		req := testutil.MakeRequest("POST", "/elections/1/candidates", models.AddCandidateRequest{Name: name}, testutil.AdminHeaders(cfg))
		req.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		elections.AddCandidate(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	w := httptest.NewRecorder()
	elections.CreateElection(w, testutil.MakeRequest("POST", "/elections",
		models.CreateElectionRequest{ElectionID: 1, Name: "Board", DurationSeconds: 30}, testutil.AdminHeaders(cfg)))
	testutil.AssertStatus(t, w, http.StatusCreated)

	clock.Advance(5 * time.Second)
	req := testutil.MakeRequest("POST", "/elections/1/votes", models.VoteRequest{CandidateID: 2}, testutil.CallerHeaders(cfg, "bob"))
	req.SetPathValue("id", "1")
	w = httptest.NewRecorder()
	voting.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	events, err := db.NewJournal(conn).Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load journal: %v", err)
	}

	kinds := make([]ledger.EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	expected := []ledger.EventKind{
		ledger.EventCandidateAdded,
		ledger.EventCandidateAdded,
		ledger.EventElectionCreated,
		ledger.EventVoteCast,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("Expected %d events, got %v", len(expected), kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("Event %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}

	last := events[len(events)-1]
	if last.Caller != "bob" || last.CandidateID != 2 {
		t.Errorf("Unexpected vote event %+v", last)
	}
	if !last.At.Equal(testutil.Epoch.Add(5 * time.Second)) {
		t.Errorf("Expected vote at %v, got %v", testutil.Epoch.Add(5*time.Second), last.At)
	}
}
