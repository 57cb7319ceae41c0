// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Identity is an authenticated caller.
type Identity string

// MaxDurationSeconds caps election length at 100 years.
const MaxDurationSeconds int64 = 100 * 365 * 24 * 60 * 60

// Status is the lifecycle state of an election id
type Status string

const (
	StatusUnscheduled Status = "unscheduled"
	StatusOpen        Status = "open"
	StatusClosed      Status = "closed"
)

type Candidate struct {
	ID        uint64
	Name      string
	VoteCount uint64
}

// ElectionInfo is a read-only summary of one election.
type ElectionInfo struct {
	ID             uint64
	Name           string
	Start          time.Time
	End            time.Time
	Status         Status
	CandidateCount int
	VotesCast      uint64
	AsOf           time.Time // when Status was evaluated
}

// Winner is the result of a closed election.
type Winner struct {
	Name      string
	ID        uint64
	VoteCount uint64
}

type election struct {
	id         uint64
	name       string
	start      time.Time
	end        time.Time
	candidates []Candidate
	voted      map[Identity]bool
	votesCast  uint64
}

func (e *election) status(now time.Time) Status {
	if now.Before(e.end) {
		return StatusOpen
	}
	return StatusClosed
}

// Registry owns every election and staged candidate. All methods are safe for
// concurrent use; mutations are serialized behind a single lock.
type Registry struct {
	mu        sync.RWMutex
	admin     Identity
	clock     Clock
	recorder  Recorder
	elections map[uint64]*election
	pending   map[uint64][]Candidate
	count     uint64
}

// NewRegistry creates an empty registry administered by admin. A nil clock
// means SystemClock.
func NewRegistry(admin Identity, clock Clock) (*Registry, error) {
	if strings.TrimSpace(string(admin)) == "" {
		return nil, newError(KindInvalidInput, "admin identity is required")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Registry{
		admin:     admin,
		clock:     clock,
		elections: make(map[uint64]*election),
		pending:   make(map[uint64][]Candidate),
	}, nil
}

// SetRecorder attaches the journal that receives every accepted mutation.
// Pass nil to detach.
func (r *Registry) SetRecorder(rec Recorder) {
	r.mu.Lock()
	r.recorder = rec
	r.mu.Unlock()
}

func (r *Registry) Admin() Identity {
	return r.admin
}

// ElectionsCount returns how many elections have been created.
func (r *Registry) ElectionsCount() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// AddCandidate stages a candidate under electionID and returns its 1-based id.
// Candidates staged after the election is created never join its roster.
func (r *Registry) AddCandidate(caller Identity, electionID uint64, name string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addCandidate(caller, electionID, name, r.clock.Now(), true)
}

// CreateElection materializes electionID from the candidates staged so far.
// An electionID of 0 picks the next free id after ElectionsCount.
func (r *Registry) CreateElection(caller Identity, electionID uint64, name string, durationSeconds int64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createElection(caller, electionID, name, durationSeconds, r.clock.Now(), true)
}

// Vote records one vote by caller for candidateID.
func (r *Registry) Vote(caller Identity, electionID, candidateID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vote(caller, electionID, candidateID, r.clock.Now(), true)
}

// Apply re-executes a journaled event at its recorded time. The recorder is
// not invoked.
func (r *Registry) Apply(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case EventCandidateAdded:
		next := uint64(len(r.pending[ev.ElectionID])) + 1
		if ev.CandidateID != 0 && ev.CandidateID != next {
			return fmt.Errorf("replay candidate %q in election %d: next id is %d, journal has %d",
				ev.Name, ev.ElectionID, next, ev.CandidateID)
		}
		_, err := r.addCandidate(ev.Caller, ev.ElectionID, ev.Name, ev.At, false)
		return err
	case EventElectionCreated:
		_, err := r.createElection(ev.Caller, ev.ElectionID, ev.Name, ev.DurationSeconds, ev.At, false)
		return err
	case EventVoteCast:
		return r.vote(ev.Caller, ev.ElectionID, ev.CandidateID, ev.At, false)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func (r *Registry) addCandidate(caller Identity, electionID uint64, name string, at time.Time, record bool) (uint64, error) {
	if caller != r.admin {
		return 0, newError(KindUnauthorized, "only admin can add a candidate")
	}
	if strings.TrimSpace(name) == "" {
		return 0, newError(KindInvalidInput, "candidate name is required")
	}

	id := uint64(len(r.pending[electionID])) + 1
	if record {
		err := r.record(Event{
			Kind:        EventCandidateAdded,
			Caller:      caller,
			ElectionID:  electionID,
			CandidateID: id,
			Name:        name,
			At:          at,
		})
		if err != nil {
			return 0, err
		}
	}

	r.pending[electionID] = append(r.pending[electionID], Candidate{ID: id, Name: name})
	return id, nil
}

func (r *Registry) createElection(caller Identity, electionID uint64, name string, durationSeconds int64, at time.Time, record bool) (uint64, error) {
	if caller != r.admin {
		return 0, newError(KindUnauthorized, "only admin can create a new election")
	}
	if electionID == 0 {
		electionID = r.nextElectionID()
	}
	if _, ok := r.elections[electionID]; ok {
		return 0, newError(KindAlreadyExists, "election %d already exists", electionID)
	}
	if strings.TrimSpace(name) == "" {
		return 0, newError(KindInvalidInput, "election name is required")
	}
	if durationSeconds <= 0 || durationSeconds > MaxDurationSeconds {
		return 0, newError(KindInvalidInput, "duration must be between 1 and %d seconds, got %d", MaxDurationSeconds, durationSeconds)
	}

	if record {
		err := r.record(Event{
			Kind:            EventElectionCreated,
			Caller:          caller,
			ElectionID:      electionID,
			Name:            name,
			DurationSeconds: durationSeconds,
			At:              at,
		})
		if err != nil {
			return 0, err
		}
	}

	staged := r.pending[electionID]
	roster := make([]Candidate, len(staged))
	copy(roster, staged)

	r.elections[electionID] = &election{
		id:         electionID,
		name:       name,
		start:      at,
		end:        at.Add(time.Duration(durationSeconds) * time.Second),
		candidates: roster,
		voted:      make(map[Identity]bool),
	}
	r.count++
	return electionID, nil
}

func (r *Registry) nextElectionID() uint64 {
	id := r.count + 1
	for {
		if _, ok := r.elections[id]; !ok {
			return id
		}
		id++
	}
}

func (r *Registry) vote(caller Identity, electionID, candidateID uint64, at time.Time, record bool) error {
	e, ok := r.elections[electionID]
	if !ok {
		return newError(KindNotFound, "election %d does not exist", electionID)
	}
	if e.status(at) == StatusClosed {
		return newError(KindElectionEnded, "election %d ended %s", electionID, humanize.RelTime(e.end, at, "ago", "from now"))
	}
	if e.voted[caller] {
		return newError(KindAlreadyVoted, "%s already voted in election %d", caller, electionID)
	}
	if candidateID == 0 || candidateID > uint64(len(e.candidates)) {
		return newError(KindNotFound, "candidate %d is not registered in election %d", candidateID, electionID)
	}

	if record {
		err := r.record(Event{
			Kind:        EventVoteCast,
			Caller:      caller,
			ElectionID:  electionID,
			CandidateID: candidateID,
			At:          at,
		})
		if err != nil {
			return err
		}
	}

	e.candidates[candidateID-1].VoteCount++
	e.voted[caller] = true
	e.votesCast++
	return nil
}

func (r *Registry) record(ev Event) error {
	if r.recorder == nil {
		return nil
	}
	if err := r.recorder.Record(ev); err != nil {
		return fmt.Errorf("record %s: %w", ev.Kind, err)
	}
	return nil
}

// GetAllCandidates returns the roster of electionID as three parallel slices
// in registration order.
func (r *Registry) GetAllCandidates(electionID uint64) (ids []uint64, names []string, voteCounts []uint64, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elections[electionID]
	if !ok {
		return nil, nil, nil, newError(KindNotFound, "election %d does not exist", electionID)
	}

	ids = make([]uint64, len(e.candidates))
	names = make([]string, len(e.candidates))
	voteCounts = make([]uint64, len(e.candidates))
	for i, c := range e.candidates {
		ids[i] = c.ID
		names[i] = c.Name
		voteCounts[i] = c.VoteCount
	}
	return ids, names, voteCounts, nil
}

// WinningElection returns the candidate with the most votes once electionID
// has closed. Ties go to the earliest registered candidate.
func (r *Registry) WinningElection(electionID uint64) (Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elections[electionID]
	if !ok {
		return Winner{}, newError(KindNotFound, "election %d does not exist", electionID)
	}
	now := r.clock.Now()
	if e.status(now) == StatusOpen {
		return Winner{}, newError(KindElectionNotEnded, "election %d closes %s", electionID, humanize.RelTime(e.end, now, "ago", "from now"))
	}
	if len(e.candidates) == 0 {
		return Winner{}, newError(KindNotFound, "election %d has no candidates", electionID)
	}

	best := e.candidates[0]
	for _, c := range e.candidates[1:] {
		if c.VoteCount > best.VoteCount {
			best = c
		}
	}
	return Winner{Name: best.Name, ID: best.ID, VoteCount: best.VoteCount}, nil
}

// Election summarizes electionID. An id with staged candidates but no
// election yet reports StatusUnscheduled.
func (r *Registry) Election(electionID uint64) (ElectionInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elections[electionID]
	if !ok {
		if staged := r.pending[electionID]; len(staged) > 0 {
			return ElectionInfo{
				ID:             electionID,
				Status:         StatusUnscheduled,
				CandidateCount: len(staged),
				AsOf:           r.clock.Now(),
			}, nil
		}
		return ElectionInfo{}, newError(KindNotFound, "election %d does not exist", electionID)
	}

	now := r.clock.Now()
	return ElectionInfo{
		ID:             e.id,
		Name:           e.name,
		Start:          e.start,
		End:            e.end,
		Status:         e.status(now),
		CandidateCount: len(e.candidates),
		VotesCast:      e.votesCast,
		AsOf:           now,
	}, nil
}

// HasVoted reports whether voter has a recorded vote in electionID.
func (r *Registry) HasVoted(electionID uint64, voter Identity) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elections[electionID]
	if !ok {
		return false, newError(KindNotFound, "election %d does not exist", electionID)
	}
	return e.voted[voter], nil
}
