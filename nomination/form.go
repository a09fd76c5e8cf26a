// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nomination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/merrymix/models"
)

var (
	ErrAlreadySubmitted = errors.New("nomination already submitted")
	ErrIncomplete       = errors.New("not all questions answered")
)

// Submitter posts a finished ballot to the backend.
type Submitter interface {
	SubmitAnswers(ctx context.Context, req models.SubmitAnswersRequest) (string, error)
}

// Form holds the answers of one user until they are submitted. It is not
// safe for concurrent use; the view serializes access.
type Form struct {
	submitter   Submitter
	answers     Answers
	onSubmitted func()
}

// NewForm returns a blank form. onSubmitted, if set, runs after the backend
// accepts a submission.
func NewForm(submitter Submitter, onSubmitted func()) *Form {
	return &Form{submitter: submitter, answers: NewAnswers(), onSubmitted: onSubmitted}
}

// Answers returns the current answers. The map must not be modified.
func (f *Form) Answers() Answers {
	return f.answers
}

func (f *Form) UpdateAnswer(key, text string) {
	f.answers = WithAnswer(f.answers, key, text)
}

// Reset drops all answers.
func (f *Form) Reset() {
	f.answers = NewAnswers()
}

// Prepare runs the local checks and builds the payload. It makes no
// network call.
func (f *Form) Prepare(username string, submitted bool) (models.SubmitAnswersRequest, error) {
	if submitted {
		return models.SubmitAnswersRequest{}, ErrAlreadySubmitted
	}
	if missing := Missing(f.answers); len(missing) > 0 {
		slog.Info("submission incomplete", "username", username, "missing", missing)
		return models.SubmitAnswersRequest{}, fmt.Errorf("%w: %d missing", ErrIncomplete, len(missing))
	}
	return BuildPayload(username, f.answers)
}

// Send posts a prepared payload and returns the backend's message.
func (f *Form) Send(ctx context.Context, req models.SubmitAnswersRequest) (string, error) {
	msg, err := f.submitter.SubmitAnswers(ctx, req)
	if err != nil {
		slog.Warn("submission failed", "username", req.Username, "error", err)
		return "", err
	}

	slog.Info("submission accepted", "username", req.Username)
	if f.onSubmitted != nil {
		f.onSubmitted()
	}
	return msg, nil
}

// Submit is Prepare followed by Send.
func (f *Form) Submit(ctx context.Context, username string, submitted bool) (string, error) {
	req, err := f.Prepare(username, submitted)
	if err != nil {
		return "", err
	}
	return f.Send(ctx, req)
}
