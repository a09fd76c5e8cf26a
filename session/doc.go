// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session persists the per-browser username slot.

A Store is key-value storage scoped by browser id; a Slot binds a Store to one
browser and the key "username":

	slot := session.NewSlot(store, browserID)
	name, ok, err := slot.Get(ctx)
	err = slot.Set(ctx, "alice")
	err = slot.Clear(ctx)

Backends:

  - SQLStore: browser_storage table, sqlite or postgres
  - RedisStore: one hash per browser
  - MemoryStore: in-process map, for tests and -t memory

The slot performs no validation; callers only store non-empty usernames.
*/
package session
