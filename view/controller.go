// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/merrymix/nomination"
	"github.com/danielhkuo/merrymix/session"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrUnknownQuestion = errors.New("unknown question")
)

// Submission is what the view knows about the user's ballot.
type Submission int

const (
	SubmissionUnknown Submission = iota
	NotSubmitted
	Submitted
)

func (s Submission) String() string {
	switch s {
	case NotSubmitted:
		return "not_submitted"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Screen is the page the browser should see.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenForm
	ScreenThankYou
)

// StatusChecker asks the backend whether username already submitted.
type StatusChecker interface {
	CheckSubmissionStatus(ctx context.Context, username string) (bool, error)
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	LoggedIn   bool
	Username   string
	Submission Submission
	Answers    nomination.Answers
}

func (s Snapshot) Submitted() bool {
	return s.Submission == Submitted
}

func (s Snapshot) Screen() Screen {
	switch {
	case !s.LoggedIn:
		return ScreenLogin
	case s.Submitted():
		return ScreenThankYou
	default:
		return ScreenForm
	}
}

// Controller is the state machine of one browser: LoggedOut, or
// LoggedIn{username, submission}. Every operation holds the controller lock
// for its whole duration, backend calls included, so the operations of one
// browser run one at a time. A second submit that arrives while the first is
// in flight therefore sees its outcome.
type Controller struct {
	mu sync.Mutex

	slot    *session.Slot
	checker StatusChecker
	form    *nomination.Form

	started    bool
	loggedIn   bool
	username   string
	submission Submission
	notices    []string
}

func NewController(slot *session.Slot, checker StatusChecker, submitter nomination.Submitter) *Controller {
	c := &Controller{slot: slot, checker: checker}
	// runs inside Submit, with c.mu held
	c.form = nomination.NewForm(submitter, c.markSubmitted)
	return c
}

// Start restores the session from the slot, like a page load. With a stored
// username the view enters LoggedIn and refreshes the submission status;
// otherwise it is LoggedOut.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start(ctx)
}

func (c *Controller) ensureStarted(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	return c.start(ctx)
}

func (c *Controller) start(ctx context.Context) error {
	username, ok, err := c.slot.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	c.started = true
	c.form.Reset()
	if !ok || username == "" {
		c.loggedIn, c.username, c.submission = false, "", SubmissionUnknown
		return nil
	}

	c.loggedIn, c.username, c.submission = true, username, SubmissionUnknown
	c.submission = c.checkStatus(ctx, username)
	slog.Info("session restored", "username", username, "submission", c.submission)
	return nil
}

// LoginSuccess refreshes the submission status, stores the username and
// enters LoggedIn. A user who already submitted is told so once.
func (c *Controller) LoginSuccess(ctx context.Context, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	submission := c.checkStatus(ctx, username)
	if submission == Submitted {
		c.notices = append(c.notices, WelcomeBackMessage(username))
	}

	if err := c.slot.Set(ctx, username); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	c.started = true
	c.loggedIn, c.username, c.submission = true, username, submission
	c.form.Reset()
	slog.Info("logged in", "username", username, "submission", submission)
	return nil
}

// SubmissionSuccess marks the ballot submitted without asking the backend.
func (c *Controller) SubmissionSuccess() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loggedIn {
		return ErrNotLoggedIn
	}
	c.markSubmitted()
	return nil
}

func (c *Controller) markSubmitted() {
	c.submission = Submitted
}

// Logout clears the slot and returns to LoggedOut, forgetting the
// submission status and any typed answers.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.slot.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	slog.Info("logged out", "username", c.username)
	c.started = true
	c.loggedIn, c.username, c.submission = false, "", SubmissionUnknown
	c.form.Reset()
	return nil
}

// UpdateAnswer replaces one answer. Answers are frozen once submitted.
func (c *Controller) UpdateAnswer(key, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return ErrNotLoggedIn
	}
	if c.submission == Submitted {
		return nomination.ErrAlreadySubmitted
	}
	if !nomination.IsQuestionKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}
	c.form.UpdateAnswer(key, text)
	return nil
}

// Submit sends the answers and queues the notice describing the outcome.
// The returned error is the form's: ErrAlreadySubmitted, ErrIncomplete, a
// *backend.RejectionError or backend.ErrUnavailable.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return "", ErrNotLoggedIn
	}

	msg, err := c.form.Submit(ctx, c.username, c.submission == Submitted)
	c.notices = append(c.notices, submitNotice(msg, err))
	return msg, err
}

// Notify queues a one-time notice.
func (c *Controller) Notify(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, msg)
}

// Notices returns and clears the queued notices.
func (c *Controller) Notices() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.notices
	c.notices = nil
	return n
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		LoggedIn:   c.loggedIn,
		Username:   c.username,
		Submission: c.submission,
		Answers:    c.form.Answers(),
	}
}

// checkStatus fails open: any error counts as not submitted.
func (c *Controller) checkStatus(ctx context.Context, username string) Submission {
	submitted, err := c.checker.CheckSubmissionStatus(ctx, username)
	if err != nil {
		slog.Warn("submission status check failed, assuming not submitted", "username", username, "error", err)
		return NotSubmitted
	}
	if submitted {
		return Submitted
	}
	return NotSubmitted
}
