// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the MerryMix front.

# Route Registration

NewRouter returns the complete handler, middleware included:

	handler := router.NewRouter(registry, gate, cfg)

# Endpoints

Health:

	GET /health

Pages (see package handlers):

	GET  /            - Login, form or thank-you page
	POST /login       - Shared-password login
	POST /submit      - Send the ten nominations
	POST /logout      - Clear the stored username

Session:

	GET /api/session - Current view state as JSON

# Middleware

From outermost to innermost:

	WithBrowserID → CSRF → ServeMux → WithLogging (per route)

WithBrowserID runs first so every request, rejected or not, leaves with a
browser cookie. CSRF rejects POSTs without a valid token with 403.
*/
package router
