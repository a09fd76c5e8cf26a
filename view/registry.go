// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/merrymix/nomination"
	"github.com/danielhkuo/merrymix/session"
)

type entry struct {
	controller *Controller
	lastSeen   time.Time
}

// Registry keeps one Controller per browser id.
type Registry struct {
	store     session.Store
	checker   StatusChecker
	submitter nomination.Submitter
	now       func() time.Time

	mu    sync.Mutex
	views map[string]*entry
}

func NewRegistry(store session.Store, checker StatusChecker, submitter nomination.Submitter) *Registry {
	return &Registry{
		store:     store,
		checker:   checker,
		submitter: submitter,
		now:       time.Now,
		views:     make(map[string]*entry),
	}
}

// Get returns the browser's controller, creating and starting it on first use.
func (r *Registry) Get(ctx context.Context, browserID string) (*Controller, error) {
	r.mu.Lock()
	e, ok := r.views[browserID]
	if !ok {
		slot := session.NewSlot(r.store, browserID)
		e = &entry{controller: NewController(slot, r.checker, r.submitter)}
		r.views[browserID] = e
	}
	e.lastSeen = r.now()
	r.mu.Unlock()

	if err := e.controller.ensureStarted(ctx); err != nil {
		return nil, err
	}
	return e.controller, nil
}

// Sweep drops controllers unused for longer than maxIdle. The persisted slot
// is kept, so a returning browser starts again from it.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			delete(r.views, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("evicted idle views", "count", removed, "remaining", len(r.views))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
