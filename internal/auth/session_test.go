package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"compendi/internal/domain"
)

func TestSessionManager_IssueAndVerify(t *testing.T) {
	sm, err := NewSessionManager("test-secret", false)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	token, expiresAt, err := sm.Issue("user-123", false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if until := time.Until(expiresAt); until < 23*time.Hour || until > 25*time.Hour {
		t.Errorf("expiry %v away, want about a day", until)
	}

	userID, err := sm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Verify() = %q, want %q", userID, "user-123")
	}
}

func TestSessionManager_RememberStretchesExpiry(t *testing.T) {
	sm, _ := NewSessionManager("test-secret", false)

	_, expiresAt, err := sm.Issue("user-123", true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if until := time.Until(expiresAt); until < 29*24*time.Hour {
		t.Errorf("expiry %v away, want about thirty days", until)
	}
}

func TestSessionManager_VerifyRejections(t *testing.T) {
	sm, _ := NewSessionManager("test-secret", false)
	other, _ := NewSessionManager("other-secret", false)

	goodToken, _, err := sm.Issue("user-123", false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := func() string {
		claims := jwt.RegisteredClaims{
			Issuer:    "compendi",
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign expired token: %v", err)
		}
		return s
	}()

	wrongIssuer := func() string {
		claims := jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		return s
	}()

	otherSecret, _, _ := other.Issue("user-123", false)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "expired", token: expired},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "signed with another secret", token: otherSecret},
		{name: "tampered payload", token: goodToken[:len(goodToken)-4] + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sm.Verify(tt.token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("Verify() error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestNewSessionManager_EmptySecret(t *testing.T) {
	if _, err := NewSessionManager("", false); err == nil {
		t.Error("NewSessionManager(\"\") = nil error, want refusal")
	}
}
