// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nomination

import (
	"strings"

	"github.com/danielhkuo/merrymix/models"
)

// Answers maps question keys to answer text.
type Answers map[string]string

// NewAnswers returns an empty answer for every question.
func NewAnswers() Answers {
	a := make(Answers, len(Questions))
	for _, q := range Questions {
		a[q.Key] = ""
	}
	return a
}

// WithAnswer returns a copy of a with key set to value; a is not modified.
func WithAnswer(a Answers, key, value string) Answers {
	next := make(Answers, len(a)+1)
	for k, v := range a {
		next[k] = v
	}
	next[key] = value
	return next
}

// Missing lists, in question order, the keys whose answer is blank after
// trimming.
func Missing(a Answers) []string {
	var missing []string
	for _, q := range Questions {
		if strings.TrimSpace(a[q.Key]) == "" {
			missing = append(missing, q.Key)
		}
	}
	return missing
}

// BuildPayload builds the submission body: one [number, text] pair per
// question in q1..q10 order, text sent exactly as typed.
func BuildPayload(username string, a Answers) (models.SubmitAnswersRequest, error) {
	pairs := make([]models.AnswerPair, 0, len(Questions))
	for _, q := range Questions {
		n, err := QuestionNumber(q.Key)
		if err != nil {
			return models.SubmitAnswersRequest{}, err
		}
		pairs = append(pairs, models.AnswerPair{Question: n, Answer: a[q.Key]})
	}
	return models.SubmitAnswersRequest{Username: username, Answers: pairs}, nil
}
