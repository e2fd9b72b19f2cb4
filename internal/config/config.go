package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Config holds all runtime configuration, read once at startup and passed
// explicitly to the components that need it.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	// SessionSecret signs session cookies. The process refuses to start
	// without it.
	SessionSecret string
	CORSOrigins   string
	// CookieSecure marks session and flash cookies as Secure (HTTPS only).
	CookieSecure bool
	// LogDir, when set, sends server logs to timestamped files instead of stdout.
	LogDir string

	Media MediaConfig
}

// MediaConfig holds the credentials for the external asset host.
type MediaConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Load reads configuration from the environment. It returns an error naming
// every missing required key so the process can refuse to start.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:8080"),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
		LogDir:        os.Getenv("LOG_DIR"),
		Media: MediaConfig{
			CloudName: os.Getenv("MEDIA_CLOUD_NAME"),
			APIKey:    os.Getenv("MEDIA_API_KEY"),
			APISecret: os.Getenv("MEDIA_API_SECRET"),
		},
	}

	var missing []string
	required := map[string]string{
		"DATABASE_URL":     cfg.DatabaseURL,
		"SESSION_SECRET":   cfg.SessionSecret,
		"MEDIA_CLOUD_NAME": cfg.Media.CloudName,
		"MEDIA_API_KEY":    cfg.Media.APIKey,
		"MEDIA_API_SECRET": cfg.Media.APISecret,
	}
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		// Deterministic message regardless of map iteration order
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
