// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrInvalidPassword = errors.New("invalid password")

// LoginRecorder stores a successful login remotely.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, name, password string) error
}

// Callbacks are invoked by AttemptLogin. Either may be nil.
type Callbacks struct {
	// Success runs synchronously once the password matched.
	Success func(username string)
	// RecordFailure runs on the recording goroutine if the remote record fails.
	RecordFailure func(err error)
}

// Gate checks the shared password. The password match alone decides the
// login; the remote record runs in the background and its failure does not
// undo the login.
type Gate struct {
	password string
	recorder LoginRecorder
	timeout  time.Duration

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

func NewGate(password string, recorder LoginRecorder, timeout time.Duration) *Gate {
	return &Gate{password: password, recorder: recorder, timeout: timeout}
}

// AttemptLogin returns username on a password match, ErrInvalidPassword
// otherwise. A mismatch makes no network call and runs no callback.
func (g *Gate) AttemptLogin(ctx context.Context, username, password string, cb Callbacks) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		slog.Info("login rejected", "username", username)
		return "", ErrInvalidPassword
	}

	g.record(ctx, username, password, cb.RecordFailure)

	slog.Info("login accepted", "username", username)
	if cb.Success != nil {
		cb.Success(username)
	}
	return username, nil
}

// Wait blocks until every background login record has finished.
func (g *Gate) Wait() {
	g.wg.Wait()
}

// Close stops new login records from starting and waits for the running
// ones. Logins accepted after Close still succeed but are not recorded.
func (g *Gate) Close() {
	g.mu.Lock()
	g.closing = true
	g.mu.Unlock()
	g.wg.Wait()
}

func (g *Gate) record(ctx context.Context, username, password string, onFailure func(error)) {
	if g.recorder == nil {
		return
	}

	// Add must not race Close's Wait
	g.mu.Lock()
	if g.closing {
		g.mu.Unlock()
		slog.Warn("login not recorded, shutting down", "username", username)
		return
	}
	g.wg.Add(1)
	g.mu.Unlock()

	// outlive the request that triggered the login
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer g.wg.Done()

		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		if err := g.recorder.RecordLogin(ctx, username, password); err != nil {
			slog.Warn("failed to record login", "username", username, "error", err)
			if onFailure != nil {
				onFailure(err)
			}
		}
	}()
}
