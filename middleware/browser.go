// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/merrymix/auth"
)

// BrowserCookie names the cookie identifying a browser's storage slot.
const BrowserCookie = "mm_browser"

const browserCookieMaxAge = 365 * 24 * time.Hour

type browserIDKey struct{}

// ContextWithBrowserID returns ctx carrying id.
func ContextWithBrowserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, browserIDKey{}, id)
}

// BrowserIDFromContext returns the id stored by WithBrowserID.
func BrowserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(browserIDKey{}).(string)
	return id, ok && id != ""
}

// WithBrowserID makes sure every request carries a browser id, issuing the
// cookie when it is missing or malformed.
func WithBrowserID(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(BrowserCookie); err == nil && auth.ValidBrowserID(c.Value) {
				id = c.Value
			}

			if id == "" {
				var err error
				id, err = auth.GenerateBrowserID()
				if err != nil {
					slog.Error("failed to generate browser id", "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     BrowserCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(browserCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(ContextWithBrowserID(r.Context(), id)))
		})
	}
}
