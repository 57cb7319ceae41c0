// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies every rejected registry operation.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindInvalidInput
	KindAlreadyExists
	KindNotFound
	KindElectionEnded
	KindElectionNotEnded
	KindAlreadyVoted
)

var kindCodes = map[Kind]string{
	KindUnknown:          "unknown",
	KindUnauthorized:     "unauthorized",
	KindInvalidInput:     "invalid_input",
	KindAlreadyExists:    "already_exists",
	KindNotFound:         "not_found",
	KindElectionEnded:    "election_ended",
	KindElectionNotEnded: "election_not_ended",
	KindAlreadyVoted:     "already_voted",
}

// String returns the stable wire code of the kind
func (k Kind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindUnknown]
}

// ParseKind is the inverse of Kind.String. Unrecognized codes yield KindUnknown.
func ParseKind(code string) Kind {
	for k, c := range kindCodes {
		if c == code {
			return k
		}
	}
	return KindUnknown
}

// Error is the only error type the registry returns for a rejected call.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, ledger.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrElectionEnded    = &Error{Kind: KindElectionEnded}
	ErrElectionNotEnded = &Error{Kind: KindElectionNotEnded}
	ErrAlreadyVoted     = &Error{Kind: KindAlreadyVoted}
)

// KindOf reports the kind of a registry error, or KindUnknown for anything else
// (including journal failures).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
