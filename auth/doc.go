// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates callers of the ledger API.

# Caller Keys

Every request that mutates state carries two headers:

	X-Caller-ID:  alice
	X-Caller-Key: <key>

The key is an HMAC-SHA256 of the identity under the server's caller salt:

	key := auth.GenerateCallerKey("alice", salt)
	identity, err := auth.Authenticate("alice", key, salt)

Keys are URL-safe base64 without padding. They are deterministic, so the
server never stores them. The admin gets a key the same way as anyone else;
what makes it the admin is that its identity matches ADMIN_IDENTITY.

# Identities

Identities are 1-128 bytes with no whitespace or control characters.

# IP Hashing

Vote logs record a salted hash of the client address instead of the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
