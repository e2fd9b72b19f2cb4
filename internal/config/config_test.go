package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/compendi")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("MEDIA_CLOUD_NAME", "demo")
	t.Setenv("MEDIA_API_KEY", "key")
	t.Setenv("MEDIA_API_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied with required keys set", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "")
		t.Setenv("ENVIRONMENT", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want default 8080", cfg.Port)
		}
		if cfg.Environment != "dev" {
			t.Errorf("Environment = %q, want default dev", cfg.Environment)
		}
		if cfg.Media.CloudName != "demo" {
			t.Errorf("Media.CloudName = %q, want demo", cfg.Media.CloudName)
		}
	})

	t.Run("missing keys are all named", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("MEDIA_API_SECRET", "")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() = nil error, want refusal")
		}
		for _, key := range []string{"SESSION_SECRET", "MEDIA_API_SECRET"} {
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not name %s", err, key)
			}
		}
		if strings.Contains(err.Error(), "DATABASE_URL") {
			t.Errorf("error %q names a key that was set", err)
		}
	})

	t.Run("cookie secure flag", func(t *testing.T) {
		setRequired(t)
		t.Setenv("COOKIE_SECURE", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !cfg.CookieSecure {
			t.Error("CookieSecure = false, want true")
		}
	})
}
