// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/models"
	"github.com/danielhkuo/election-ledger/testutil"
)

func castVotes(t *testing.T, reg *ledger.Registry, electionID uint64, votes map[string]uint64) {
	t.Helper()
	for voter, candidate := range votes {
		if err := reg.Vote(ledger.Identity(voter), electionID, candidate); err != nil {
			t.Fatalf("Vote by %s failed: %v", voter, err)
		}
	}
}

func TestGetAllCandidates(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.NewTestRegistry(t, cfg)
	handler := NewResultsHandler(reg, cfg)

	testutil.CreateTestElection(t, reg, 1, time.Minute, "Alice", "Bob", "Carol")
	castVotes(t, reg, 1, map[string]uint64{"v1": 2, "v2": 2, "v3": 3})

	req := testutil.MakeRequest("GET", "/elections/1/candidates", nil, nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.GetAllCandidates(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CandidatesResponse
	testutil.AssertJSON(t, w, &resp)

	if !reflect.DeepEqual(resp.IDs, []uint64{1, 2, 3}) {
		t.Errorf("Unexpected ids %v", resp.IDs)
	}
	if !reflect.DeepEqual(resp.Names, []string{"Alice", "Bob", "Carol"}) {
		t.Errorf("Unexpected names %v", resp.Names)
	}
	if !reflect.DeepEqual(resp.VoteCounts, []uint64{0, 2, 1}) {
		t.Errorf("Unexpected vote_counts %v", resp.VoteCounts)
	}
}

func TestGetAllCandidatesNotFound(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.NewTestRegistry(t, cfg)
	handler := NewResultsHandler(reg, cfg)
	testutil.StageCandidates(t, reg, 1, "Alice")

	req := testutil.MakeRequest("GET", "/elections/1/candidates", nil, nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.GetAllCandidates(w, req)

	testutil.AssertErrorCode(t, w, http.StatusNotFound, "not_found")
}

func TestGetWinner(t *testing.T) {
	cfg := testutil.GetTestConfig()

	tests := []struct {
		name           string
		candidates     []string
		votes          map[string]uint64
		advance        time.Duration
		expectedStatus int
		expectedCode   string
		expected       models.WinnerResponse
	}{
		{
			name:           "clear winner",
			candidates:     []string{"Alice", "Bob", "Carol"},
			votes:          map[string]uint64{"v1": 2, "v2": 2, "v3": 3},
			advance:        time.Minute,
			expectedStatus: http.StatusOK,
			expected:       models.WinnerResponse{ElectionID: 1, Name: "Bob", ID: 2, VoteCount: 2},
		},
		{
			name:           "tie goes to first registered",
			candidates:     []string{"Alice", "Bob"},
			votes:          map[string]uint64{"v1": 2, "v2": 1},
			advance:        time.Minute,
			expectedStatus: http.StatusOK,
			expected:       models.WinnerResponse{ElectionID: 1, Name: "Alice", ID: 1, VoteCount: 1},
		},
		{
			name:           "no votes picks first candidate",
			candidates:     []string{"Alice", "Bob"},
			advance:        2 * time.Minute,
			expectedStatus: http.StatusOK,
			expected:       models.WinnerResponse{ElectionID: 1, Name: "Alice", ID: 1, VoteCount: 0},
		},
		{
			name:           "still open",
			candidates:     []string{"Alice"},
			advance:        59 * time.Second,
			expectedStatus: http.StatusConflict,
			expectedCode:   "election_not_ended",
		},
		{
			name:           "no candidates",
			advance:        time.Minute,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, clock := testutil.NewTestRegistry(t, cfg)
			handler := NewResultsHandler(reg, cfg)
			testutil.CreateTestElection(t, reg, 1, time.Minute, tt.candidates...)
			castVotes(t, reg, 1, tt.votes)
			clock.Advance(tt.advance)

			req := testutil.MakeRequest("GET", "/elections/1/winner", nil, nil)
			req.SetPathValue("id", "1")
			w := httptest.NewRecorder()
			handler.GetWinner(w, req)

			if tt.expectedCode != "" {
				testutil.AssertErrorCode(t, w, tt.expectedStatus, tt.expectedCode)
				return
			}

			testutil.AssertStatus(t, w, tt.expectedStatus)
			var resp models.WinnerResponse
			testutil.AssertJSON(t, w, &resp)
			if resp != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, resp)
			}
		})
	}
}

func TestGetWinnerUnknownElection(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.NewTestRegistry(t, cfg)
	handler := NewResultsHandler(reg, cfg)

	req := testutil.MakeRequest("GET", "/elections/4/winner", nil, nil)
	req.SetPathValue("id", "4")
	w := httptest.NewRecorder()
	handler.GetWinner(w, req)

	testutil.AssertErrorCode(t, w, http.StatusNotFound, "not_found")
}
