// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/merrymix/cliparse"
)

// Open connects to the SQL database named by the config and verifies the
// connection. Only sqlite and postgres storage types are SQL backed.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	var driver string
	switch cfg.DatabaseType {
	case cliparse.StorageSQLite:
		driver = "sqlite"
	case cliparse.StoragePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("storage type %q is not SQL backed", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializes writers; one connection avoids SQLITE_BUSY
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Per-browser key-value storage
CREATE TABLE IF NOT EXISTS browser_storage (
    browser_id TEXT NOT NULL,
    slot_key TEXT NOT NULL,
    slot_value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (browser_id, slot_key)
);

CREATE INDEX IF NOT EXISTS idx_browser_storage_updated_at ON browser_storage(updated_at);
`
