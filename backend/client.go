// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/danielhkuo/merrymix/models"
)

// ErrUnavailable covers every transport or decoding failure talking to the
// backend.
var ErrUnavailable = errors.New("backend unavailable")

// RejectionError is a well-formed backend reply reporting failure.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return "backend rejected request: " + e.Message
}

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewClient builds a client for the backend at baseURL. Each call is bounded
// by timeout; zero means no bound beyond the caller's context.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient, timeout: timeout}
}

// CheckSubmissionStatus handles GET /check_submission_status
// Errors are returned to the caller; the fail-open policy lives in the view.
func (c *Client) CheckSubmissionStatus(ctx context.Context, username string) (bool, error) {
	q := url.Values{}
	q.Set("username", username)

	var resp *models.SubmissionStatusResponse
	if err := c.do(ctx, http.MethodGet, "/check_submission_status?"+q.Encode(), nil, &resp); err != nil {
		return false, err
	}
	if resp == nil {
		return false, fmt.Errorf("%w: null status reply", ErrUnavailable)
	}
	return bool(resp.Submitted), nil
}

// RecordLogin handles POST /login. The reply body is decoded and dropped.
func (c *Client) RecordLogin(ctx context.Context, name, password string) error {
	var discard json.RawMessage
	return c.do(ctx, http.MethodPost, "/login", models.LoginRequest{Name: name, Password: password}, &discard)
}

// SubmitAnswers handles POST /submit_answers
// A reply with a falsy success field comes back as *RejectionError.
func (c *Client) SubmitAnswers(ctx context.Context, req models.SubmitAnswersRequest) (string, error) {
	var resp *models.SubmitAnswersResponse
	if err := c.do(ctx, http.MethodPost, "/submit_answers", req, &resp); err != nil {
		return "", err
	}
	// a null reply is unreadable, not a rejection
	if resp == nil {
		return "", fmt.Errorf("%w: null submission reply", ErrUnavailable)
	}
	if !resp.Success {
		return "", &RejectionError{Message: resp.Message}
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// the body may still carry a usable reply, e.g. {"success":false,...}
		slog.Warn("backend returned non-2xx", "method", method, "path", req.URL.Path, "status", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s reply (status %d): %v", ErrUnavailable, req.URL.Path, resp.StatusCode, err)
	}
	return nil
}
