// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
)

// UsernameKey is the slot key holding the logged-in username.
const UsernameKey = "username"

var ErrNoBrowser = errors.New("browser id is required")

// Store is per-browser key-value storage. A missing key is reported with
// ok == false and a nil error.
type Store interface {
	Get(ctx context.Context, browserID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, browserID, key, value string) error
	Delete(ctx context.Context, browserID, key string) error
}

// Slot is the single persisted username entry of one browser.
type Slot struct {
	store     Store
	browserID string
}

func NewSlot(store Store, browserID string) *Slot {
	return &Slot{store: store, browserID: browserID}
}

// Get returns the stored username, or ok == false when nobody is logged in.
func (s *Slot) Get(ctx context.Context) (string, bool, error) {
	if s.browserID == "" {
		return "", false, ErrNoBrowser
	}
	return s.store.Get(ctx, s.browserID, UsernameKey)
}

// Set stores username. Callers pass a non-empty name.
func (s *Slot) Set(ctx context.Context, username string) error {
	if s.browserID == "" {
		return ErrNoBrowser
	}
	return s.store.Set(ctx, s.browserID, UsernameKey, username)
}

func (s *Slot) Clear(ctx context.Context) error {
	if s.browserID == "" {
		return ErrNoBrowser
	}
	return s.store.Delete(ctx, s.browserID, UsernameKey)
}
