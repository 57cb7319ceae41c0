// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a typed HTTP client for the election ledger API.

	c := client.New("http://localhost:3318", "bob", key)
	if err := c.Vote(ctx, 1, 2); errors.Is(err, ledger.ErrAlreadyVoted) {
		// ...
	}

Non-2xx responses come back as *APIError. APIError.Is matches the ledger's
sentinel errors, so callers can test for ledger.ErrNotFound and friends
without looking at HTTP statuses.
*/
package client
