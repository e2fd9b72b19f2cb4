package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"compendi/internal/auth"
	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/httputil"
	"compendi/internal/view"
)

// Session resolves the session cookie into a request-scoped user. A missing,
// invalid or stale cookie just leaves the request anonymous; rejecting it is
// RequireAuth's job.
func Session(sm *auth.SessionManager, users repositories.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sm.Verify(cookie.Value)
			if err != nil {
				sm.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					logger.Error("session user lookup failed", "error", err)
				}
				sm.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, httputil.WithUser(r, user))
		})
	}
}

// RequireAuth guards a protected handler. Anonymous requests are flashed
// "Please login first." and redirected to the login page with a deferred
// redirect-back target.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httputil.GetUser(r) == nil {
			view.SetFlash(w, view.FlashError, "Please login first.")
			target := "/login?next=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
