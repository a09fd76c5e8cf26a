// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets a UUIDv7 trace id, returned in the X-Trace-Id header and
logged with request start and completion (status, duration_ms).

# Browser Identity

WithBrowserID issues the long-lived mm_browser cookie that scopes a browser's
stored username. Handlers read it back with:

	id, ok := middleware.BrowserIDFromContext(r.Context())

Missing or malformed cookies are replaced with a fresh id.

# CSRF Protection

CSRF wraps the whole mux with gorilla/csrf. Every unsafe request needs the
token rendered into forms by csrf.TemplateField. When cookies are not marked
secure the site is treated as plain HTTP, which skips the Referer check that
gorilla/csrf applies to HTTPS requests.

	handler := middleware.WithBrowserID(cfg.SecureCookies)(
		middleware.CSRF(cfg.CSRFKey, cfg.SecureCookies)(mux))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
*/
package middleware
