// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"errors"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/election-ledger/auth"
	"github.com/danielhkuo/election-ledger/client"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/router"
	"github.com/danielhkuo/election-ledger/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestElectionctl_Workflow(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, clock := testutil.NewTestRegistry(t, cfg)
	srv := httptest.NewServer(router.NewRouter(reg, cfg))
	defer srv.Close()

	adminKey := auth.GenerateCallerKey(cfg.AdminIdentity, cfg.CallerKeySalt)
	admin := []string{"--server", srv.URL, "--caller", cfg.AdminIdentity, "--key", adminKey}

	out, err := run(t, append(admin, "add-candidate", "1", "Ada", "Lovelace")...)
	require.NoError(t, err)
	assert.Contains(t, out, `staged candidate 1 "Ada Lovelace"`)

	_, err = run(t, append(admin, "add-candidate", "1", "Grace")...)
	require.NoError(t, err)

	out, err = run(t, append(admin, "create-election", "--duration", "1m", "Board", "vote")...)
	require.NoError(t, err)
	assert.Contains(t, out, `created election 1 "Board vote"`)

	out, err = run(t, append(admin, "keygen", "bob")...)
	require.NoError(t, err)
	bobKey := out[:len(out)-1]
	assert.Equal(t, auth.GenerateCallerKey("bob", cfg.CallerKeySalt), bobKey)

	offline, err := run(t, "keygen", "--salt", cfg.CallerKeySalt, "bob")
	require.NoError(t, err)
	assert.Equal(t, out, offline)

	bob := []string{"--server", srv.URL, "--caller", "bob", "--key", bobKey}
	out, err = run(t, append(bob, "vote", "1", "2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "voted for candidate 2 in election 1")

	_, err = run(t, append(bob, "vote", "1", "1")...)
	assert.Equal(t, exitAlreadyVoted, exitCode(err))

	out, err = run(t, "--server", srv.URL, "candidates", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Grace")

	_, err = run(t, "--server", srv.URL, "winner", "1")
	assert.Equal(t, exitElectionNotEnded, exitCode(err))

	clock.Advance(time.Minute)

	out, err = run(t, "--server", srv.URL, "winner", "1")
	require.NoError(t, err)
	assert.Equal(t, "Grace (candidate 2) with 1 vote\n", out)

	out, err = run(t, "--server", srv.URL, "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "--server", srv.URL, "election", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `election 1 "Board vote": closed, 2 candidates, 1 vote`)
}

func TestElectionctl_ArgumentErrors(t *testing.T) {
	_, err := run(t, "--server", "http://127.0.0.1:1", "vote", "one", "2")
	assert.Equal(t, exitInvalidInput, exitCode(err))

	_, err = run(t, "keygen", "--salt", "s", "has space")
	assert.Equal(t, exitInvalidInput, exitCode(err))

	_, err = run(t, "--server", "http://127.0.0.1:1", "create-election", "--duration", "1500ms", "Board")
	assert.Equal(t, exitInvalidInput, exitCode(err))
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n        uint64
		expected string
	}{
		{0, "0"},
		{1234567, "1,234,567"},
		{math.MaxInt64, "9,223,372,036,854,775,807"},
		{math.MaxUint64, "18,446,744,073,709,551,615"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatCount(tt.n))
		})
	}

	assert.Equal(t, "18,446,744,073,709,551,615 votes", votesLabel(math.MaxUint64))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, exitOK},
		{"plain error", errors.New("connection refused"), exitFailure},
		{"unauthenticated", &client.APIError{Status: 401, Code: "unauthenticated"}, exitUnauthenticated},
		{"unauthorized", &client.APIError{Status: 403, Code: "unauthorized"}, exitUnauthorized},
		{"invalid input", &client.APIError{Status: 400, Code: "invalid_input"}, exitInvalidInput},
		{"already exists", &client.APIError{Status: 409, Code: "already_exists"}, exitAlreadyExists},
		{"not found", &client.APIError{Status: 404, Code: "not_found"}, exitNotFound},
		{"election ended", &client.APIError{Status: 409, Code: "election_ended"}, exitElectionEnded},
		{"election not ended", &client.APIError{Status: 409, Code: "election_not_ended"}, exitElectionNotEnded},
		{"already voted", &client.APIError{Status: 409, Code: "already_voted"}, exitAlreadyVoted},
		{"rate limited", &client.APIError{Status: 429, Code: "rate_limited"}, exitFailure},
		{"local ledger error", &ledger.Error{Kind: ledger.KindInvalidInput}, exitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCode(tt.err))
		})
	}
}
