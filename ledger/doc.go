// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the election registry: the state machine behind
the Election Ledger API.

# Lifecycle

An election id moves through three states:

	unscheduled → open → closed

The admin stages candidates under an election id with AddCandidate, then
calls CreateElection. Creation copies the staged candidates into the
election's roster; anything staged under that id afterwards stays in the
buffer and never joins. The election is open until start + duration and
closed from that instant on. Closing is driven by the Clock, not by a call.

	reg, _ := ledger.NewRegistry("admin", ledger.SystemClock{})
	reg.AddCandidate("admin", 1, "C1")
	reg.AddCandidate("admin", 1, "C2")
	reg.CreateElection("admin", 1, "E1", 10)
	reg.Vote("alice", 1, 1)
	// ten seconds later
	w, _ := reg.WinningElection(1) // {Name: "C1", ID: 1, VoteCount: 1}

# Errors

Every rejected call returns a *Error tagged with a Kind:

	unauthorized, invalid_input, already_exists, not_found,
	election_ended, election_not_ended, already_voted

Match them with errors.Is(err, ledger.ErrAlreadyVoted) or KindOf(err).
Checks run before any state changes, so a failed call leaves the registry
untouched.

Vote checks, in order: the election exists (not_found), it is still open
(election_ended), the caller has not voted (already_voted), the candidate id
is on the roster (not_found).

# Journal

SetRecorder attaches a Recorder that sees every accepted mutation as an
Event before it is applied. If Record fails the mutation is dropped and the
error is returned. Apply replays recorded events at their original time.
*/
package ledger
