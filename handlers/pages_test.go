// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/merrymix/auth"
	"github.com/danielhkuo/merrymix/backend"
	"github.com/danielhkuo/merrymix/middleware"
	"github.com/danielhkuo/merrymix/models"
	"github.com/danielhkuo/merrymix/session"
	"github.com/danielhkuo/merrymix/testutil"
	"github.com/danielhkuo/merrymix/view"
)

const browserID = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

type fixture struct {
	fake    *testutil.FakeBackend
	store   *session.MemoryStore
	gate    *auth.Gate
	handler *PageHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fake := testutil.NewFakeBackend(t)
	store := session.NewMemoryStore()
	client := backend.NewClient(fake.URL(), nil, time.Second)
	gate := auth.NewGate(testutil.TestPassword, client, time.Second)
	t.Cleanup(gate.Wait)

	return &fixture{
		fake:    fake,
		store:   store,
		gate:    gate,
		handler: NewPageHandler(view.NewRegistry(store, client, client), gate),
	}
}

func withBrowser(r *http.Request) *http.Request {
	return r.WithContext(middleware.ContextWithBrowserID(r.Context(), browserID))
}

func (f *fixture) get(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.handler.Home(w, withBrowser(httptest.NewRequest("GET", "/", nil)))
	return w
}

func (f *fixture) post(t *testing.T, h http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h(w, withBrowser(testutil.MakeFormRequest("POST", path, form)))
	return w
}

func (f *fixture) login(t *testing.T, username string) {
	t.Helper()
	w := f.post(t, f.handler.Login, "/login", url.Values{"username": {username}, "password": {testutil.TestPassword}})
	testutil.AssertStatus(t, w, http.StatusSeeOther)
}

func (f *fixture) storedUsername(t *testing.T) (string, bool) {
	t.Helper()
	v, ok, err := f.store.Get(context.Background(), browserID, session.UsernameKey)
	require.NoError(t, err)
	return v, ok
}

func fullBallot(name string) url.Values {
	form := url.Values{}
	for i := 1; i <= 10; i++ {
		form.Set("q"+strconv.Itoa(i), name)
	}
	return form
}

func TestHome_LoggedOut(t *testing.T) {
	f := newFixture(t)

	w := f.get(t)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `action="/login"`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Empty(t, f.fake.Calls())
}

func TestHome_MissingBrowserID(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.handler.Home(w, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name       string
		username   string
		password   string
		wantStatus int
		wantBody   string
	}{
		{"wrong password", "alice", "parro@123", http.StatusUnauthorized, view.MsgInvalidPassword},
		{"empty password", "alice", "", http.StatusBadRequest, MsgFieldsRequired},
		{"empty username", "", testutil.TestPassword, http.StatusBadRequest, MsgFieldsRequired},
		{"password with trailing space", "alice", testutil.TestPassword + " ", http.StatusUnauthorized, view.MsgInvalidPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			w := f.post(t, f.handler.Login, "/login", url.Values{"username": {tc.username}, "password": {tc.password}})

			testutil.AssertStatus(t, w, tc.wantStatus)
			assert.Contains(t, w.Body.String(), tc.wantBody)
			assert.Empty(t, f.fake.Calls(), "a rejected login makes no backend call")
			_, ok := f.storedUsername(t)
			assert.False(t, ok)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	f.login(t, "alice")
	f.gate.Wait()

	stored, ok := f.storedUsername(t)
	assert.True(t, ok)
	assert.Equal(t, "alice", stored)
	assert.Equal(t, 1, f.fake.CallsTo("/login"))
	assert.Equal(t, 1, f.fake.CallsTo("/check_submission_status"))

	w := f.get(t)
	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, "Welcome, Alice")
	assert.Equal(t, 10, strings.Count(body, `placeholder="Enter colleague's name..."`))
	assert.Contains(t, body, "*All 10 nominations must be filled out")
}

func TestLogin_RecordFailureKeepsLogin(t *testing.T) {
	f := newFixture(t)
	f.fake.SetBroken(true)

	f.login(t, "alice")
	f.gate.Wait()

	stored, _ := f.storedUsername(t)
	assert.Equal(t, "alice", stored)

	body := f.get(t).Body.String()
	assert.Contains(t, body, view.MsgLoginError)
	assert.Contains(t, body, "Welcome, Alice", "status check failed open to the form")
}

func TestLogin_AlreadySubmitted(t *testing.T) {
	f := newFixture(t)
	f.fake.SetSubmitted("alice", true)

	f.login(t, "alice")

	body := f.get(t).Body.String()
	assert.Contains(t, body, view.WelcomeBackMessage("alice"))
	assert.Contains(t, body, "Thank You, Alice!")
	assert.Contains(t, body, "Submission Complete!")

	// notices are shown once
	assert.NotContains(t, f.get(t).Body.String(), "Welcome back")
}

func TestSubmit_Complete(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")

	w := f.post(t, f.handler.Submit, "/submit", fullBallot("Alice"))
	testutil.AssertStatus(t, w, http.StatusSeeOther)
	assert.Equal(t, "/", w.Header().Get("Location"))

	sub := f.fake.LastSubmission(t)
	assert.Equal(t, "alice", sub.Username)
	require.Len(t, sub.Answers, 10)
	assert.Equal(t, models.AnswerPair{Question: 10, Answer: "Alice"}, sub.Answers[9])

	body := f.get(t).Body.String()
	assert.Contains(t, body, "Recorded")
	assert.Contains(t, body, "Submission Complete!")

	// a second post is refused locally
	f.post(t, f.handler.Submit, "/submit", fullBallot("Bob"))
	assert.Equal(t, 1, f.fake.CallsTo("/submit_answers"))
	assert.Contains(t, f.get(t).Body.String(), view.MsgAlreadySubmitted)
}

func TestSubmit_Incomplete(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")

	form := fullBallot("Alice")
	form.Set("q5", "")
	f.post(t, f.handler.Submit, "/submit", form)

	assert.Zero(t, f.fake.CallsTo("/submit_answers"))
	body := f.get(t).Body.String()
	assert.Contains(t, body, view.MsgIncomplete)
	assert.Contains(t, body, `value="Alice"`, "typed answers are kept")
}

func TestSubmit_Rejected(t *testing.T) {
	f := newFixture(t)
	f.fake.Reject("Voting closed")
	f.login(t, "alice")

	f.post(t, f.handler.Submit, "/submit", fullBallot("Alice"))

	body := f.get(t).Body.String()
	assert.Contains(t, body, "Submission Failed: Voting closed")
	assert.Contains(t, body, `action="/submit"`)
}

func TestSubmit_LoggedOut(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, f.handler.Submit, "/submit", fullBallot("Alice"))

	testutil.AssertStatus(t, w, http.StatusSeeOther)
	assert.Empty(t, f.fake.Calls())
	assert.Contains(t, f.get(t).Body.String(), `action="/login"`)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")

	w := f.post(t, f.handler.Logout, "/logout", url.Values{})
	testutil.AssertStatus(t, w, http.StatusSeeOther)

	_, ok := f.storedUsername(t)
	assert.False(t, ok)
	assert.Contains(t, f.get(t).Body.String(), `action="/login"`)
}

func TestSession(t *testing.T) {
	f := newFixture(t)

	get := func() models.SessionResponse {
		w := httptest.NewRecorder()
		f.handler.Session(w, withBrowser(httptest.NewRequest("GET", "/api/session", nil)))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.SessionResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	assert.Equal(t, models.SessionResponse{}, get())

	f.login(t, "alice")
	assert.Equal(t, models.SessionResponse{LoggedIn: true, Username: "alice"}, get())

	f.post(t, f.handler.Submit, "/submit", fullBallot("Alice"))
	assert.Equal(t, models.SessionResponse{LoggedIn: true, Username: "alice", Submitted: true}, get())
}

func TestSession_MissingBrowserID(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.handler.Session(w, httptest.NewRequest("GET", "/api/session", nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
