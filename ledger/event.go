// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "time"

// EventKind names an accepted mutation.
type EventKind string

const (
	EventCandidateAdded  EventKind = "candidate_added"
	EventElectionCreated EventKind = "election_created"
	EventVoteCast        EventKind = "vote_cast"
)

// Event is the journal record of one accepted mutation. Replaying the events
// of a registry in order through Apply rebuilds its state.
type Event struct {
	Kind            EventKind
	Caller          Identity
	ElectionID      uint64
	CandidateID     uint64
	Name            string
	DurationSeconds int64
	At              time.Time
}

// Recorder persists events before the registry applies them.
type Recorder interface {
	Record(ev Event) error
}
