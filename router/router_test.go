// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/merrymix/auth"
	"github.com/danielhkuo/merrymix/backend"
	"github.com/danielhkuo/merrymix/middleware"
	"github.com/danielhkuo/merrymix/session"
	"github.com/danielhkuo/merrymix/testutil"
	"github.com/danielhkuo/merrymix/view"
)

var tokenField = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

func newTestRouter(t *testing.T) (http.Handler, *testutil.FakeBackend) {
	t.Helper()
	fake := testutil.NewFakeBackend(t)
	cfg := testutil.GetTestConfig(fake.URL())

	client := backend.NewClient(cfg.BackendURL, nil, cfg.Timeout)
	gate := auth.NewGate(cfg.LoginPassword, client, cfg.Timeout)
	t.Cleanup(gate.Wait)
	views := view.NewRegistry(session.NewMemoryStore(), client, client)

	return NewRouter(views, gate, cfg), fake
}

// browser replays cookies between requests like a real browser would
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
	token   string
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, handler: h, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	if m := tokenField.FindStringSubmatch(w.Body.String()); m != nil {
		b.token = m[1]
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest("GET", path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	form.Set("gorilla.csrf.Token", b.token)
	return b.do(testutil.MakeFormRequest("POST", path, form))
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)
	b := newBrowser(t, mux)

	w := b.get("/")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `action="/login"`) {
		t.Error("Expected the login page")
	}
	if _, ok := b.cookies[middleware.BrowserCookie]; !ok {
		t.Error("Expected a browser cookie")
	}
	if b.token == "" {
		t.Error("Expected a CSRF token field in the page")
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/", http.StatusOK},
		{"GET", "/api/session", http.StatusOK},
		{"GET", "/nope", http.StatusNotFound},
		{"GET", "/login", http.StatusMethodNotAllowed},
		// unsafe methods without a token never reach the handler
		{"POST", "/login", http.StatusForbidden},
		{"POST", "/submit", http.StatusForbidden},
		{"POST", "/logout", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("Expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestNominationFlow(t *testing.T) {
	mux, fake := newTestRouter(t)
	b := newBrowser(t, mux)
	b.get("/")

	w := b.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), view.MsgInvalidPassword) {
		t.Error("Expected the invalid password message")
	}

	w = b.post("/login", url.Values{"username": {"alice"}, "password": {testutil.TestPassword}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d: %s", w.Code, w.Body.String())
	}

	w = b.get("/")
	if !strings.Contains(w.Body.String(), "Welcome, Alice") {
		t.Fatal("Expected the nomination form after login")
	}

	ballot := url.Values{}
	for i := 1; i <= 10; i++ {
		ballot.Set("q"+strconv.Itoa(i), "Alice")
	}
	w = b.post("/submit", ballot)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", w.Code)
	}

	w = b.get("/")
	body := w.Body.String()
	if !strings.Contains(body, "Recorded") || !strings.Contains(body, "Submission Complete!") {
		t.Errorf("Expected the thank-you page with the server message, got %s", body)
	}
	if n := fake.CallsTo("/submit_answers"); n != 1 {
		t.Errorf("Expected 1 submission, got %d", n)
	}

	// the JSON view agrees with the page
	w = b.get("/api/session")
	if !strings.Contains(w.Body.String(), `"submitted":true`) {
		t.Errorf("Expected submitted session, got %s", w.Body.String())
	}

	w = b.post("/logout", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", w.Code)
	}
	if !strings.Contains(b.get("/").Body.String(), `action="/login"`) {
		t.Error("Expected the login page after logout")
	}
}
