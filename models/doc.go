// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types exchanged with the nominations backend
and the JSON returned by this server.

# Backend Requests

  - LoginRequest: name, password (POST /login)
  - SubmitAnswersRequest: username, answers (POST /submit_answers)

Answers are encoded as [questionNumber, answerText] pairs:

	{"username":"alice","answers":[[1,"Bob"],[2,"Carol"], ...]}

# Backend Responses

  - SubmissionStatusResponse: submitted (GET /check_submission_status)
  - SubmitAnswersResponse: success, message

Boolean fields use Truthy, which accepts any JSON value the way a browser
would test it.

# Server Responses

  - SessionResponse: logged_in, username, submitted (GET /api/session)
  - ErrorResponse: error, message
*/
package models
