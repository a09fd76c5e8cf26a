// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the login gate and browser identifiers.

# Login Gate

A Gate compares the submitted password with the configured shared password:

	gate := auth.NewGate(cfg.LoginPassword, backendClient, cfg.Timeout)
	name, err := gate.AttemptLogin(ctx, username, password, auth.Callbacks{
		Success:       func(name string) { ... },
		RecordFailure: func(err error) { ... },
	})

On a mismatch it returns ErrInvalidPassword and does nothing else. On a match it
starts the remote login record (POST /login) in the background, runs Success and
returns. If the record fails, the error is logged and handed to RecordFailure;
the login stands.

Call Close during shutdown: it refuses new records and lets pending ones
finish. Wait only waits, which tests use.

# Browser IDs

GenerateBrowserID returns 192 random bits, URL-safe base64 encoded:

	id, err := auth.GenerateBrowserID()

The id keys the browser's server-side storage, the way an origin keys
local storage.
*/
package auth
