// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/merrymix/auth"
	"github.com/danielhkuo/merrymix/cliparse"
	"github.com/danielhkuo/merrymix/handlers"
	"github.com/danielhkuo/merrymix/middleware"
	"github.com/danielhkuo/merrymix/view"
)

func NewRouter(views *view.Registry, gate *auth.Gate, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	pageHandler := handlers.NewPageHandler(views, gate)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Home))
	mux.HandleFunc("POST /login", middleware.WithLogging(pageHandler.Login))
	mux.HandleFunc("POST /submit", middleware.WithLogging(pageHandler.Submit))
	mux.HandleFunc("POST /logout", middleware.WithLogging(pageHandler.Logout))

	// Session state for scripts
	mux.HandleFunc("GET /api/session", middleware.WithLogging(pageHandler.Session))

	csrf := middleware.CSRF(cfg.CSRFKey, cfg.SecureCookies)
	return middleware.WithBrowserID(cfg.SecureCookies)(csrf(mux))
}
