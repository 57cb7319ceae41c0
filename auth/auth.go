// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

// MaxIdentityLen bounds caller identities in bytes
const MaxIdentityLen = 128

// Request headers carrying the caller's credentials
const (
	CallerIDHeader  = "X-Caller-ID"
	CallerKeyHeader = "X-Caller-Key"
)

var (
	ErrMissingCaller    = errors.New("caller identity and key required")
	ErrInvalidIdentity  = errors.New("invalid caller identity")
	ErrInvalidCallerKey = errors.New("invalid caller key")
)

// GenerateCallerKey creates the HMAC-based key a caller presents with its identity
// This is deterministic and verifiable
func GenerateCallerKey(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks if the provided key is valid for the identity
func ValidateCallerKey(identity, key, salt string) error {
	expected := GenerateCallerKey(identity, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}

// ValidateIdentity rejects identities that are empty, too long, or contain
// whitespace or control characters
func ValidateIdentity(identity string) error {
	if identity == "" || len(identity) > MaxIdentityLen {
		return ErrInvalidIdentity
	}
	for _, r := range identity {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidIdentity
		}
	}
	return nil
}

// Authenticate returns the identity once its key checks out
func Authenticate(identity, key, salt string) (string, error) {
	if identity == "" || key == "" {
		return "", ErrMissingCaller
	}
	if err := ValidateIdentity(identity); err != nil {
		return "", err
	}
	if err := ValidateCallerKey(identity, key, salt); err != nil {
		return "", err
	}
	return identity, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
