// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/election-ledger/ledger"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open("sqlite", filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, CreateSchema(conn))
	return conn
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open("mysql", "root@/ledger")
	assert.Error(t, err)
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	assert.NoError(t, CreateSchema(conn))
}

func TestJournal_RecordAndLoad(t *testing.T) {
	conn := openTestDB(t)
	journal := NewJournal(conn)

	events := []ledger.Event{
		{Kind: ledger.EventCandidateAdded, Caller: "admin", ElectionID: 1, CandidateID: 1, Name: "C1", At: epoch},
		{Kind: ledger.EventElectionCreated, Caller: "admin", ElectionID: 1, Name: "E1", DurationSeconds: 10, At: epoch.Add(time.Second)},
		{Kind: ledger.EventVoteCast, Caller: "alice", ElectionID: 1, CandidateID: 1, At: epoch.Add(2 * time.Second)},
	}
	for _, ev := range events {
		require.NoError(t, journal.Record(ev))
	}

	loaded, err := NewJournal(conn).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, events, loaded)

	var seqs []int64
	rows, err := conn.Query(`SELECT seq FROM ledger_event ORDER BY seq`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var s int64
		require.NoError(t, rows.Scan(&s))
		seqs = append(seqs, s)
	}
	assert.Equal(t, []int64{1, 2, 3}, seqs)
}

func TestJournal_ContinuesSequenceAfterReopen(t *testing.T) {
	conn := openTestDB(t)

	first := NewJournal(conn)
	require.NoError(t, first.Record(ledger.Event{Kind: ledger.EventCandidateAdded, Caller: "admin", ElectionID: 1, CandidateID: 1, Name: "C1", At: epoch}))

	// A fresh journal that never called Load still picks up after the last row
	second := NewJournal(conn)
	require.NoError(t, second.Record(ledger.Event{Kind: ledger.EventCandidateAdded, Caller: "admin", ElectionID: 1, CandidateID: 2, Name: "C2", At: epoch}))

	loaded, err := NewJournal(conn).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "C2", loaded[1].Name)
}

func TestJournal_UniqueVoteIndex(t *testing.T) {
	conn := openTestDB(t)
	journal := NewJournal(conn)

	vote := ledger.Event{Kind: ledger.EventVoteCast, Caller: "alice", ElectionID: 1, CandidateID: 1, At: epoch}
	require.NoError(t, journal.Record(vote))
	assert.Error(t, journal.Record(vote), "database rejects a second vote row for the same caller")

	vote.ElectionID = 2
	assert.NoError(t, journal.Record(vote), "sequence still advances after a rejected insert")
}

func TestJournal_LargeElectionIDRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	journal := NewJournal(conn)

	ev := ledger.Event{Kind: ledger.EventCandidateAdded, Caller: "admin", ElectionID: ^uint64(0), CandidateID: 1, Name: "C1", At: epoch}
	require.NoError(t, journal.Record(ev))

	loaded, err := journal.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, ^uint64(0), loaded[0].ElectionID)
}

func TestRestore(t *testing.T) {
	conn := openTestDB(t)
	clock := ledger.NewManualClock(epoch)

	original, err := ledger.NewRegistry("admin", clock)
	require.NoError(t, err)
	original.SetRecorder(NewJournal(conn))

	for _, name := range []string{"C1", "C2", "C3"} {
		_, err := original.AddCandidate("admin", 1, name)
		require.NoError(t, err)
	}
	_, err = original.CreateElection("admin", 1, "E1", 10)
	require.NoError(t, err)
	require.NoError(t, original.Vote("alice", 1, 3))
	require.NoError(t, original.Vote("bob", 1, 3))
	require.NoError(t, original.Vote("carol", 1, 1))
	_, err = original.AddCandidate("admin", 2, "Next")
	require.NoError(t, err)

	restored, err := ledger.NewRegistry("admin", clock)
	require.NoError(t, err)
	journal := NewJournal(conn)
	n, err := Restore(context.Background(), journal, restored)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	restored.SetRecorder(journal)

	_, _, counts, err := restored.GetAllCandidates(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 0, 2}, counts)
	assert.Equal(t, uint64(1), restored.ElectionsCount())

	info, err := restored.Election(2)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusUnscheduled, info.Status)

	assert.ErrorIs(t, restored.Vote("alice", 1, 1), ledger.ErrAlreadyVoted)

	// New mutations keep extending the same journal
	require.NoError(t, restored.Vote("dave", 1, 2))
	clock.Advance(10 * time.Second)
	w, err := restored.WinningElection(1)
	require.NoError(t, err)
	assert.Equal(t, "C3", w.Name)

	events, err := NewJournal(conn).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 9)
}

func TestRestore_WrongAdmin(t *testing.T) {
	conn := openTestDB(t)
	journal := NewJournal(conn)
	require.NoError(t, journal.Record(ledger.Event{
		Kind: ledger.EventElectionCreated, Caller: "old-admin", ElectionID: 1, Name: "E1", DurationSeconds: 10, At: epoch,
	}))

	reg, err := ledger.NewRegistry("new-admin", ledger.NewManualClock(epoch))
	require.NoError(t, err)

	n, err := Restore(context.Background(), journal, reg)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	assert.Equal(t, 0, n)
}
