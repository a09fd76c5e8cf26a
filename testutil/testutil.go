// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/merrymix/cliparse"
	"github.com/danielhkuo/merrymix/db"
	"github.com/danielhkuo/merrymix/models"
)

// TestPassword is the shared login password used by GetTestConfig
const TestPassword = "Parro@123"

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.Config{DatabaseType: cliparse.StorageSQLite, DatabaseURL: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(backendURL string) cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseType:  cliparse.StorageMemory,
		BackendURL:    backendURL,
		LoginPassword: TestPassword,
		CSRFKey:       "test-csrf-key",
		Timeout:       2 * time.Second,
		ViewIdleTTL:   time.Hour,
	}
}

// Call is one request received by FakeBackend
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// FakeBackend is an httptest server speaking the nominations backend API.
// It records every call. Zero values answer: not submitted, login ok,
// submission accepted with message "Recorded".
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	calls     []Call
	submitted map[string]bool
	broken    bool
	reject    string
	gate      chan struct{}
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{submitted: make(map[string]bool)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeBackend) URL() string { return f.Server.URL }

// SetSubmitted sets what check_submission_status reports for username
func (f *FakeBackend) SetSubmitted(username string, submitted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted[username] = submitted
}

// SetBroken makes every endpoint return an undecodable body
func (f *FakeBackend) SetBroken(broken bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken = broken
}

// Reject makes submit_answers reply {"success":false,"message":msg}
func (f *FakeBackend) Reject(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reject = msg
}

// HoldLogin blocks /login replies until the returned func is called
func (f *FakeBackend) HoldLogin() (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gate = gate
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Calls returns a copy of every call received so far
func (f *FakeBackend) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo counts calls received for path
func (f *FakeBackend) CallsTo(path string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Path == path {
			n++
		}
	}
	return n
}

// LastSubmission decodes the most recent submit_answers body
func (f *FakeBackend) LastSubmission(t *testing.T) models.SubmitAnswersRequest {
	t.Helper()
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Path == "/submit_answers" {
			var req models.SubmitAnswersRequest
			if err := json.Unmarshal(calls[i].Body, &req); err != nil {
				t.Fatalf("Failed to decode submission: %v", err)
			}
			return req
		}
	}
	t.Fatal("no submission recorded")
	return models.SubmitAnswersRequest{}
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})
	broken, reject, gate := f.broken, f.reject, f.gate
	submitted := f.submitted[r.URL.Query().Get("username")]
	f.mu.Unlock()

	if broken {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/check_submission_status":
		json.NewEncoder(w).Encode(map[string]bool{"submitted": submitted})
	case r.Method == http.MethodPost && r.URL.Path == "/login":
		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "login recorded"})
	case r.Method == http.MethodPost && r.URL.Path == "/submit_answers":
		if reject != "" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": reject})
			return
		}
		var req models.SubmitAnswersRequest
		if err := json.Unmarshal(body, &req); err == nil {
			f.SetSubmitted(req.Username, true)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Recorded"})
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}
}

// MakeFormRequest creates an HTTP test request with a urlencoded form body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
