package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"compendi/internal/auth"
	"compendi/internal/domain"
	"compendi/internal/httputil"
	"compendi/internal/models"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, domain.ErrNotFound
}

func sessionFixture(t *testing.T) (*auth.SessionManager, func(http.Handler) http.Handler) {
	t.Helper()

	sm, err := auth.NewSessionManager("test-secret", false)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	users := &stubUserRepo{users: map[string]*models.User{
		"user-1": {ID: "user-1", Username: "ada"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return sm, Session(sm, users, logger)
}

func TestSession(t *testing.T) {
	sm, mw := sessionFixture(t)

	capture := func(got **models.User) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = httputil.GetUser(r)
		})
	}

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		token, _, err := sm.Issue("user-1", false)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		var got *models.User
		req := httptest.NewRequest("GET", "/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		mw(capture(&got)).ServeHTTP(httptest.NewRecorder(), req)

		if got == nil || got.ID != "user-1" {
			t.Errorf("user = %+v, want user-1", got)
		}
	})

	t.Run("no cookie stays anonymous", func(t *testing.T) {
		var got *models.User
		req := httptest.NewRequest("GET", "/projects", nil)
		mw(capture(&got)).ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("user = %+v, want nil", got)
		}
	})

	t.Run("tampered cookie is cleared and stays anonymous", func(t *testing.T) {
		var got *models.User
		req := httptest.NewRequest("GET", "/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "bogus.token.here"})
		rec := httptest.NewRecorder()
		mw(capture(&got)).ServeHTTP(rec, req)

		if got != nil {
			t.Errorf("user = %+v, want nil", got)
		}
		cleared := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == auth.CookieName && c.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Error("invalid session cookie was not cleared")
		}
	})

	t.Run("cookie for a deleted user stays anonymous", func(t *testing.T) {
		token, _, err := sm.Issue("user-gone", false)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		var got *models.User
		req := httptest.NewRequest("GET", "/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		mw(capture(&got)).ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("user = %+v, want nil", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous request redirects to login with flash", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/projects", nil)
		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login?next=%2Fprojects" {
			t.Errorf("Location = %q, want /login?next=%%2Fprojects", loc)
		}
		flashed := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == "compendi_flash" && c.Value != "" {
				flashed = true
			}
		}
		if !flashed {
			t.Error("no flash cookie was set")
		}
	})

	t.Run("authenticated request passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/projects", nil)
		req = httputil.WithUser(req, &models.User{ID: "user-1"})
		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}
