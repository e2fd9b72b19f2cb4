package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"compendi/internal/auth"
	"compendi/internal/domain"
	"compendi/internal/forms"
	"compendi/internal/httputil"
	"compendi/internal/service"
	"compendi/internal/view"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *auth.SessionManager
	renderer    *view.Renderer
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager, renderer *view.Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		renderer:    renderer,
		logger:      logger,
	}
}

// LoginPage is the login template's data.
type LoginPage struct {
	view.BasePage
	Form   forms.LoginForm
	Errors map[string]string
	Next   string
}

// ShowLogin renders the login form.
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login.html", LoginPage{
		BasePage: basePage(w, r, "Log in"),
		Next:     httputil.SafeNextPath(r.URL.Query().Get("next"), ""),
	})
}

// Login processes a login submission.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	values, err := httputil.ParseForm(w, r)
	if err != nil {
		renderError(h.renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
		return
	}

	form := forms.ParseLoginForm(values)
	next := httputil.SafeNextPath(r.URL.Query().Get("next"), "")

	if err := form.Validate(); err != nil {
		h.renderer.Render(w, http.StatusUnprocessableEntity, "login.html", LoginPage{
			BasePage: basePage(w, r, "Log in"),
			Form:     form,
			Errors:   forms.FieldErrors(err),
			Next:     next,
		})
		return
	}

	user, err := h.authService.Login(r.Context(), form)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// One message for both unknown username and wrong password
			page := LoginPage{
				BasePage: basePage(w, r, "Log in"),
				Form:     form,
				Next:     next,
			}
			page.Flash = &view.Flash{Kind: view.FlashError, Message: "Input invalid, please try again."}
			h.renderer.Render(w, http.StatusUnprocessableEntity, "login.html", page)
			return
		}
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(user.ID, form.Remember)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}
	h.sessions.SetCookie(w, token, expiresAt)

	view.SetFlash(w, view.FlashMessage, "Logged in successfully.")
	http.Redirect(w, r, httputil.SafeNextPath(next, "/projects"), http.StatusSeeOther)
}

// RegisterPage is the registration template's data.
type RegisterPage struct {
	view.BasePage
	Form   forms.RegisterForm
	Errors map[string]string
}

// ShowRegister renders the registration form.
// GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "register.html", RegisterPage{
		BasePage: basePage(w, r, "Register"),
	})
}

// Register processes a registration submission.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	values, err := httputil.ParseForm(w, r)
	if err != nil {
		renderError(h.renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
		return
	}

	form := forms.ParseRegisterForm(values)

	if err := form.Validate(); err != nil {
		h.renderer.Render(w, http.StatusUnprocessableEntity, "register.html", RegisterPage{
			BasePage: basePage(w, r, "Register"),
			Form:     form,
			Errors:   forms.FieldErrors(err),
		})
		return
	}

	if _, err := h.authService.Register(r.Context(), form); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			message := "Username already in use."
			if conflict.Field == "email" {
				message = "Email already in use."
			}
			page := RegisterPage{
				BasePage: basePage(w, r, "Register"),
				Form:     form,
			}
			page.Flash = &view.Flash{Kind: view.FlashError, Message: message}
			h.renderer.Render(w, http.StatusUnprocessableEntity, "register.html", page)
			return
		}
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	// No automatic login after registration
	view.SetFlash(w, view.FlashMessage, "You've been registered! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the session.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	view.SetFlash(w, view.FlashMessage, "Logged out successfully.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
