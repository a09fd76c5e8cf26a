// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend is the HTTP client for the nominations backend.

# Endpoints

	GET  /check_submission_status?username=NAME → {"submitted": bool}
	POST /login          {"name", "password"}     → any JSON
	POST /submit_answers {"username", "answers"}  → {"success": bool, "message": string}

# Errors

  - ErrUnavailable: transport failure, timeout or an undecodable reply
  - *RejectionError: submit_answers replied with a falsy success field

Replies are judged by their body, not their status code, so a 4xx carrying
{"success": false, "message": "..."} is a rejection rather than an outage.
*/
package backend
