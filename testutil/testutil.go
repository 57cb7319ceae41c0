// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/election-ledger/auth"
	"github.com/danielhkuo/election-ledger/cliparse"
	"github.com/danielhkuo/election-ledger/db"
	"github.com/danielhkuo/election-ledger/ledger"
)

// TestAdmin is the admin identity used by GetTestConfig
const TestAdmin = "admin"

// Epoch is the starting time of clocks built by NewTestRegistry
var Epoch = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// SetupTestDB opens a fresh SQLite database in a temp dir with the journal schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  cliparse.DatabaseSQLite,
		AdminIdentity: TestAdmin,
		CallerKeySalt: "test-caller-salt",
		VoteRate:      1000,
		VoteBurst:     1000,
		LogLevel:      slog.LevelError,
	}
}

// NewTestRegistry returns a registry owned by cfg.AdminIdentity and the
// manual clock driving it
func NewTestRegistry(t *testing.T, cfg cliparse.Config) (*ledger.Registry, *ledger.ManualClock) {
	t.Helper()

	clock := ledger.NewManualClock(Epoch)
	reg, err := ledger.NewRegistry(ledger.Identity(cfg.AdminIdentity), clock)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	return reg, clock
}

// CallerHeaders returns the auth headers for identity
func CallerHeaders(cfg cliparse.Config, identity string) map[string]string {
	return map[string]string{
		auth.CallerIDHeader:  identity,
		auth.CallerKeyHeader: auth.GenerateCallerKey(identity, cfg.CallerKeySalt),
	}
}

// AdminHeaders returns the auth headers for the configured admin
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return CallerHeaders(cfg, cfg.AdminIdentity)
}

// StageCandidates adds names to electionID as the admin
func StageCandidates(t *testing.T, reg *ledger.Registry, electionID uint64, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := reg.AddCandidate(reg.Admin(), electionID, name); err != nil {
			t.Fatalf("Failed to stage candidate %q: %v", name, err)
		}
	}
}

// CreateTestElection stages names and opens election electionID for duration
func CreateTestElection(t *testing.T, reg *ledger.Registry, electionID uint64, duration time.Duration, names ...string) {
	t.Helper()
	StageCandidates(t, reg, electionID, names...)
	if _, err := reg.CreateElection(reg.Admin(), electionID, "Test Election", int64(duration/time.Second)); err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks the status and the ErrorResponse code together
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Code != code {
		t.Errorf("Expected error code %q, got %q", code, resp.Code)
	}
}
