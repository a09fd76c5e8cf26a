// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps slots in the browser_storage table (see package db).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, browserID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT slot_value FROM browser_storage
		WHERE browser_id = $1 AND slot_key = $2
	`, browserID, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot: %w", err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, browserID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO browser_storage (browser_id, slot_key, slot_value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (browser_id, slot_key)
		DO UPDATE SET slot_value = excluded.slot_value, updated_at = excluded.updated_at
	`, browserID, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, browserID, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM browser_storage WHERE browser_id = $1 AND slot_key = $2
	`, browserID, key)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
