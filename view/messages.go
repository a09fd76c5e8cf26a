// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/danielhkuo/merrymix/backend"
	"github.com/danielhkuo/merrymix/nomination"
)

// User-visible notices
const (
	MsgInvalidPassword  = "Invalid password. Try again."
	MsgLoginError       = "An error occurred during login."
	MsgAlreadySubmitted = "You have already submitted this form!"
	MsgIncomplete       = "Please answer all 10 mandatory questions before submitting."
	MsgSubmissionFailed = "Submission Failed: "
	MsgConnectionError  = "An error occurred while connecting to the server."
)

func WelcomeBackMessage(username string) string {
	return fmt.Sprintf("Welcome back, %s. You have already submitted your form! Responses are confidential. Thank you!", username)
}

// DisplayName upper-cases the first letter of username.
func DisplayName(username string) string {
	r, size := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return username
	}
	return string(unicode.ToUpper(r)) + username[size:]
}

// submitNotice maps the outcome of a submission to what the user is told.
func submitNotice(msg string, err error) string {
	var rej *backend.RejectionError
	switch {
	case err == nil:
		return msg
	case errors.Is(err, nomination.ErrAlreadySubmitted):
		return MsgAlreadySubmitted
	case errors.Is(err, nomination.ErrIncomplete):
		return MsgIncomplete
	case errors.As(err, &rej):
		return MsgSubmissionFailed + rej.Message
	default:
		return MsgConnectionError
	}
}
