// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Server port (default 3000)
	-d               Database URL (sqlite file, postgres DSN, redis address)
	-t               Storage type: sqlite, postgres, redis, memory (default sqlite)
	-backend         Nominations backend base URL (default http://localhost:8081)
	-password        Shared login password
	-csrf-key        CSRF signing key
	-secure-cookies  Mark cookies Secure
	-timeout         Backend request timeout (default 10s)
	-idle            Evict idle in-memory views after this long (default 2h)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	BACKEND_URL     → -backend
	LOGIN_PASSWORD  → -password
	CSRF_KEY        → -csrf-key
	SECURE_COOKIES  → -secure-cookies
	BACKEND_TIMEOUT → -timeout
	VIEW_IDLE_TTL   → -idle

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing.

# Validation

ParseFlags returns an error if LOGIN_PASSWORD or CSRF_KEY is missing, if the
storage type is unknown, or if postgres/redis storage has no URL.
*/
package cliparse
