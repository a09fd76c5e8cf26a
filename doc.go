// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MerryMix nominations front.

MerryMix is the web front of an office awards event: people log in with a
shared event password and a name of their choice, fill in ten nomination
questions once, and get a thank-you page afterwards. Storing and counting the
nominations is the job of a separate backend, reached over HTTP.

# Starting the Server

	LOGIN_PASSWORD=... CSRF_KEY=... go run .

Or with flags:

	go run . -p 3000 -backend http://localhost:8081 -password ... -csrf-key ...

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - LOGIN_PASSWORD (-password): The shared event password
  - CSRF_KEY (-csrf-key): Secret for form tokens

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - BACKEND_URL (-backend): Nominations backend (default: http://localhost:8081)
  - DATABASE_TYPE (-t): sqlite, postgres, redis or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:merrymix.db for sqlite)
  - SECURE_COOKIES (-secure-cookies): Mark cookies Secure, for HTTPS (default: false)
  - BACKEND_TIMEOUT (-timeout): Bound on every backend call (default: 10s)
  - VIEW_IDLE_TTL (-idle): Evict in-memory views idle this long (default: 2h)

# Architecture

  - handlers: HTML pages and the session JSON endpoint
  - router: Route definitions and middleware chain
  - middleware: Logging, browser cookie, CSRF, JSON helpers
  - view: Per-browser state machine (logged out / logged in, submitted or not)
  - nomination: The ten questions, answers and submission rules
  - auth: Shared-password gate and browser ids
  - backend: HTTP client for the nominations backend
  - session: Per-browser username slot (sqlite, postgres, redis or memory)
  - models: Backend wire types
  - db: SQL connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
