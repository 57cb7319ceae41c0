// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/election-ledger/ledger"
)

// DefaultWriteTimeout bounds a single journal insert
const DefaultWriteTimeout = 5 * time.Second

// Journal stores ledger events in the ledger_event table. It implements
// ledger.Recorder.
type Journal struct {
	db           *sql.DB
	writeTimeout time.Duration

	mu      sync.Mutex
	primed  bool
	nextSeq int64
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db, writeTimeout: DefaultWriteTimeout}
}

// Load returns every stored event in sequence order.
func (j *Journal) Load(ctx context.Context) ([]ledger.Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, kind, caller, election_id, candidate_id, name, duration_seconds, occurred_at
		FROM ledger_event
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []ledger.Event{}
	var lastSeq int64
	for rows.Next() {
		var (
			seq, electionID, candidateID, duration, occurredAt int64
			kind, caller, name                                 string
		)
		if err := rows.Scan(&seq, &kind, &caller, &electionID, &candidateID, &name, &duration, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ledger.Event{
			Kind:            ledger.EventKind(kind),
			Caller:          ledger.Identity(caller),
			ElectionID:      uint64(electionID),
			CandidateID:     uint64(candidateID),
			Name:            name,
			DurationSeconds: duration,
			At:              time.Unix(0, occurredAt).UTC(),
		})
		lastSeq = seq
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	j.mu.Lock()
	j.nextSeq = lastSeq + 1
	j.primed = true
	j.mu.Unlock()

	return events, nil
}

// Record appends one event. The registry calls it under its own lock, so
// records arrive one at a time and in order.
func (j *Journal) Record(ev ledger.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.writeTimeout)
	defer cancel()

	if !j.primed {
		var maxSeq int64
		err := j.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM ledger_event`).Scan(&maxSeq)
		if err != nil {
			return fmt.Errorf("failed to read journal position: %w", err)
		}
		j.nextSeq = maxSeq + 1
		j.primed = true
	}

	eventID := uuid.NewString()
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO ledger_event (seq, event_id, kind, caller, election_id, candidate_id, name, duration_seconds, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, j.nextSeq, eventID, string(ev.Kind), string(ev.Caller), int64(ev.ElectionID), int64(ev.CandidateID),
		ev.Name, ev.DurationSeconds, ev.At.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert %s event: %w", ev.Kind, err)
	}

	slog.Debug("event journaled", "seq", j.nextSeq, "event_id", eventID, "kind", ev.Kind, "election_id", ev.ElectionID)
	j.nextSeq++
	return nil
}

// Restore replays every stored event into reg and returns how many were
// applied. Call it before attaching the journal as the registry's recorder.
func Restore(ctx context.Context, j *Journal, reg *ledger.Registry) (int, error) {
	events, err := j.Load(ctx)
	if err != nil {
		return 0, err
	}

	for i, ev := range events {
		if err := reg.Apply(ev); err != nil {
			return i, fmt.Errorf("failed to replay event %d (%s, election %d): %w", i+1, ev.Kind, ev.ElectionID, err)
		}
	}

	slog.Info("journal replayed", "events", len(events), "elections", reg.ElectionsCount())
	return len(events), nil
}
