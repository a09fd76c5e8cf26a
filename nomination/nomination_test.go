// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nomination

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/merrymix/backend"
	"github.com/danielhkuo/merrymix/models"
	"github.com/danielhkuo/merrymix/testutil"
)

type countingSubmitter struct {
	calls int
	msg   string
	err   error
}

func (c *countingSubmitter) SubmitAnswers(context.Context, models.SubmitAnswersRequest) (string, error) {
	c.calls++
	return c.msg, c.err
}

func filled(f *Form, text string) {
	for _, q := range Questions {
		f.UpdateAnswer(q.Key, text)
	}
}

func TestQuestions(t *testing.T) {
	require.Len(t, Questions, 10)
	for i, q := range Questions {
		n, err := QuestionNumber(q.Key)
		require.NoError(t, err)
		assert.Equal(t, i+1, n)
		assert.True(t, IsQuestionKey(q.Key))
	}

	for _, bad := range []string{"", "q", "q0", "q11", "x1", "q01", "q1a"} {
		assert.False(t, IsQuestionKey(bad), bad)
	}
}

func TestWithAnswerIsImmutable(t *testing.T) {
	a := NewAnswers()
	b := WithAnswer(a, "q3", "Carol")

	assert.Equal(t, "", a["q3"], "original must not change")
	assert.Equal(t, "Carol", b["q3"])
	assert.Len(t, b, 10)
}

func TestMissing(t *testing.T) {
	a := NewAnswers()
	assert.Len(t, Missing(a), 10)

	for _, q := range Questions {
		a = WithAnswer(a, q.Key, "x")
	}
	assert.Empty(t, Missing(a))

	a = WithAnswer(a, "q5", "   \t")
	assert.Equal(t, []string{"q5"}, Missing(a))
}

func TestBuildPayload(t *testing.T) {
	a := NewAnswers()
	for _, q := range Questions {
		a = WithAnswer(a, q.Key, "  "+q.Key+" answer ")
	}

	req, err := BuildPayload("alice", a)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.Username)
	require.Len(t, req.Answers, 10)
	for i, p := range req.Answers {
		assert.Equal(t, i+1, p.Question)
		assert.Equal(t, "  "+Questions[i].Key+" answer ", p.Answer, "text is sent verbatim")
	}
}

func TestSubmit_AlreadySubmitted(t *testing.T) {
	sub := &countingSubmitter{}
	f := NewForm(sub, nil)
	filled(f, "Alice")

	_, err := f.Submit(context.Background(), "alice", true)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Zero(t, sub.calls)
}

func TestSubmit_Incomplete(t *testing.T) {
	for _, blank := range []string{"", " ", "\n\t "} {
		sub := &countingSubmitter{}
		f := NewForm(sub, nil)
		filled(f, "Alice")
		f.UpdateAnswer("q5", blank)

		_, err := f.Submit(context.Background(), "alice", false)
		assert.ErrorIs(t, err, ErrIncomplete)
		assert.Zero(t, sub.calls, "no network call with a blank answer")
	}
}

func TestSubmit_Success(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	client := backend.NewClient(fake.URL(), nil, time.Second)

	succeeded := 0
	f := NewForm(client, func() { succeeded++ })
	filled(f, "Alice")

	msg, err := f.Submit(context.Background(), "alice", false)
	require.NoError(t, err)
	assert.Equal(t, "Recorded", msg)
	assert.Equal(t, 1, succeeded)

	got := fake.LastSubmission(t)
	assert.Equal(t, "alice", got.Username)
	require.Len(t, got.Answers, 10)
	for i, p := range got.Answers {
		assert.Equal(t, models.AnswerPair{Question: i + 1, Answer: "Alice"}, p)
	}
}

func TestSubmit_Rejected(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.Reject("Duplicate entry")
	client := backend.NewClient(fake.URL(), nil, time.Second)

	succeeded := 0
	f := NewForm(client, func() { succeeded++ })
	filled(f, "Alice")

	_, err := f.Submit(context.Background(), "alice", false)
	var rej *backend.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "Duplicate entry", rej.Message)
	assert.Zero(t, succeeded)

	// answers stay editable and intact
	assert.Equal(t, "Alice", f.Answers()["q1"])
}

func TestSubmit_Unavailable(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.SetBroken(true)
	client := backend.NewClient(fake.URL(), nil, time.Second)

	succeeded := 0
	f := NewForm(client, func() { succeeded++ })
	filled(f, "Alice")

	_, err := f.Submit(context.Background(), "alice", false)
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	assert.Zero(t, succeeded)
}

func TestReset(t *testing.T) {
	f := NewForm(&countingSubmitter{}, nil)
	filled(f, "Alice")
	f.Reset()
	assert.Len(t, Missing(f.Answers()), 10)
}
