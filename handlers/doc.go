// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers serves the MerryMix pages.

# Pages

PageHandler renders server-side HTML from templates embedded in the binary.
Which page a browser sees depends only on its view state:

	logged out              → login page
	logged in, not yet sent → nomination form (10 questions)
	logged in, submitted    → thank-you page

# Endpoints

	GET  /            - Home: current page for this browser
	POST /login       - Login: username + shared password
	POST /submit      - Submit: answers q1..q10
	POST /logout      - Logout: forget the stored username
	GET  /api/session - Session: {logged_in, username, submitted}

Every POST answers with 303 See Other back to /, so a reload never resends a
form. The outcome of an action is queued as a notice on the browser's view and
shown once on the next page. The only exception is a failed login, which
re-renders the login page directly with 401 or 400.

# Dependencies

	h := handlers.NewPageHandler(registry, gate)

The browser id comes from middleware.WithBrowserID and the CSRF token field
from middleware.CSRF; both must wrap these handlers.
*/
package handlers
