package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"compendi/internal/domain"
)

// CookieName is the session cookie's name.
const CookieName = "compendi_session"

const (
	// sessionTTL is the lifetime of a plain login.
	sessionTTL = 24 * time.Hour
	// rememberTTL is the lifetime when the user asked to be remembered.
	rememberTTL = 30 * 24 * time.Hour
)

// SessionManager issues and verifies signed session tokens. A session is an
// HS256 JWT whose subject is the user id; there is no server-side session
// store.
type SessionManager struct {
	secret       []byte
	issuer       string
	cookieSecure bool
}

// NewSessionManager creates a session manager signing with secret.
func NewSessionManager(secret string, cookieSecure bool) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("session secret cannot be empty")
	}
	return &SessionManager{
		secret:       []byte(secret),
		issuer:       "compendi",
		cookieSecure: cookieSecure,
	}, nil
}

// Issue creates a signed session token for userID. Remember stretches the
// expiry from a day to thirty.
func (m *SessionManager) Issue(userID string, remember bool) (string, time.Time, error) {
	ttl := sessionTTL
	if remember {
		ttl = rememberTTL
	}
	expiresAt := time.Now().Add(ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return token, expiresAt, nil
}

// Verify validates a session token and returns the user id it is bound to.
// Any failure, including expiry, a tampered signature, or a non-HMAC
// algorithm, yields domain.ErrUnauthorized.
func (m *SessionManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			// Pin the algorithm to prevent confusion attacks
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
	)
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}

	return claims.Subject, nil
}

// SetCookie writes the session cookie on the response.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
