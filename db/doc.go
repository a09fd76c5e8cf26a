// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database and creates its schema.

# Drivers

Open picks the driver from cliparse.Config.DatabaseType:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - browser_storage: (browser_id, slot_key) → slot_value, the server-side stand-in for a
    browser's local storage. The session package keeps the logged-in username
    under the key "username".
*/
package db
