// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Backend request types

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AnswerPair is one nomination; it travels as a two element array
// [questionNumber, answerText].
type AnswerPair struct {
	Question int
	Answer   string
}

func (p AnswerPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Question, p.Answer})
}

func (p *AnswerPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("answer pair must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Question); err != nil {
		return fmt.Errorf("question number: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Answer); err != nil {
		return fmt.Errorf("answer text: %w", err)
	}
	return nil
}

type SubmitAnswersRequest struct {
	Username string       `json:"username"`
	Answers  []AnswerPair `json:"answers"`
}

// Backend response types

type SubmissionStatusResponse struct {
	Submitted Truthy `json:"submitted"`
}

type SubmitAnswersResponse struct {
	Success Truthy `json:"success"`
	Message string `json:"message"`
}

// Truthy decodes any JSON value by JavaScript truthiness: false, 0, "" and
// null are false, everything else is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty JSON value")
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = false
	case bytes.Equal(data, []byte("true")):
		*t = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = s != ""
	case data[0] == '{' || data[0] == '[':
		if !json.Valid(data) {
			return fmt.Errorf("invalid JSON value")
		}
		*t = true
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid JSON value %q", data)
		}
		*t = f != 0
	}
	return nil
}

// Front-end response types

type SessionResponse struct {
	LoggedIn  bool   `json:"logged_in"`
	Username  string `json:"username,omitempty"`
	Submitted bool   `json:"submitted"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
