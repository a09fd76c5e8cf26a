// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package view holds the per-browser session and submission state machine.

# States

	LoggedOut ──LoginSuccess──▶ LoggedIn{username, submission}
	LoggedIn  ──Logout───────▶ LoggedOut
	LoggedIn  ──SubmissionSuccess──▶ LoggedIn{username, Submitted}

Start restores LoggedIn from the persisted slot (with the submission status
re-checked) or falls back to LoggedOut. Submission is Unknown until the backend
answers; a failed status check counts as NotSubmitted so the form stays on
offer.

# Notices

Outcomes the user must see once, such as the welcome-back message or the
result of a submission, are queued and drained by Notices when the next page
renders. Notify queues one from outside, e.g. a failed login record.

# Registry

A Registry maps browser ids to controllers, creating and starting them
lazily. Sweep evicts idle controllers; their slots stay in storage.
*/
package view
