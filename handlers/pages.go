// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/danielhkuo/merrymix/auth"
	"github.com/danielhkuo/merrymix/middleware"
	"github.com/danielhkuo/merrymix/models"
	"github.com/danielhkuo/merrymix/nomination"
	"github.com/danielhkuo/merrymix/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"login.html":    parsePage("login.html"),
	"form.html":     parsePage("form.html"),
	"thankyou.html": parsePage("thankyou.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// MsgFieldsRequired is shown when the login form arrives without a username
// or password.
const MsgFieldsRequired = "Username and password are required."

type questionField struct {
	Key   string
	Label string
	Value string
}

type pageData struct {
	Title       string
	Notices     []string
	CSRFField   template.HTML
	Username    string
	DisplayName string
	Message     string
	Questions   []questionField
}

type PageHandler struct {
	views *view.Registry
	gate  *auth.Gate
}

func NewPageHandler(views *view.Registry, gate *auth.Gate) *PageHandler {
	return &PageHandler{views: views, gate: gate}
}

// Home handles GET /
// Renders the login page, the nomination form or the thank-you page,
// whichever the browser's view is on. A submit still in flight for the same
// browser holds the view, so the page waits for its outcome (at most the
// backend timeout).
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	snap := c.Snapshot()
	data := pageData{
		Notices:     c.Notices(),
		CSRFField:   csrf.TemplateField(r),
		Username:    snap.Username,
		DisplayName: view.DisplayName(snap.Username),
	}

	switch snap.Screen() {
	case view.ScreenLogin:
		data.Title = "Login"
		h.render(w, http.StatusOK, "login.html", data)
	case view.ScreenThankYou:
		data.Title = "Thank You"
		h.render(w, http.StatusOK, "thankyou.html", data)
	default:
		data.Title = "Nominations"
		data.Questions = questionFields(snap.Answers)
		h.render(w, http.StatusOK, "form.html", data)
	}
}

// Login handles POST /login
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	loginPage := func(status int, msg string) {
		h.render(w, status, "login.html", pageData{
			Title:     "Login",
			Notices:   c.Notices(),
			CSRFField: csrf.TemplateField(r),
			Username:  username,
			Message:   msg,
		})
	}

	if username == "" || password == "" {
		loginPage(http.StatusBadRequest, MsgFieldsRequired)
		return
	}

	var sessionErr error
	_, err := h.gate.AttemptLogin(r.Context(), username, password, auth.Callbacks{
		Success: func(name string) {
			sessionErr = c.LoginSuccess(r.Context(), name)
		},
		RecordFailure: func(error) {
			c.Notify(view.MsgLoginError)
		},
	})
	if errors.Is(err, auth.ErrInvalidPassword) {
		loginPage(http.StatusUnauthorized, view.MsgInvalidPassword)
		return
	}
	if err == nil {
		err = sessionErr
	}
	if err != nil {
		slog.Error("login failed", "username", username, "error", err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Submit handles POST /submit
// The outcome, good or bad, reaches the user as a notice on the next page.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	for _, q := range nomination.Questions {
		values, present := r.PostForm[q.Key]
		if !present {
			continue
		}
		if err := c.UpdateAnswer(q.Key, values[0]); err != nil {
			// frozen or logged out; Submit reports either
			break
		}
	}

	if _, err := c.Submit(r.Context()); err != nil {
		slog.Info("submission not accepted", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := c.Logout(r.Context()); err != nil {
		slog.Error("logout failed", "error", err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Session handles GET /api/session
func (h *PageHandler) Session(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.BrowserIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "browser id is required")
		return
	}
	c, err := h.views.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load view", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	snap := c.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		LoggedIn:  snap.LoggedIn,
		Username:  snap.Username,
		Submitted: snap.Submitted(),
	})
}

func (h *PageHandler) controller(w http.ResponseWriter, r *http.Request) (*view.Controller, bool) {
	id, ok := middleware.BrowserIDFromContext(r.Context())
	if !ok {
		slog.Error("request without browser id", "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}

	c, err := h.views.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load view", "error", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := pages[page].Execute(&buf, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func questionFields(answers nomination.Answers) []questionField {
	fields := make([]questionField, len(nomination.Questions))
	for i, q := range nomination.Questions {
		fields[i] = questionField{Key: q.Key, Label: q.Label, Value: answers[q.Key]}
	}
	return fields
}
