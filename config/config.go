// config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. It is loaded once in main and
// injected into the components that need it, instead of each call site
// reading the environment on its own.
type Config struct {
	Port     string
	MongoURI string
	DBName   string

	JWTSecret string

	// OTP challenge and approval session lifetimes
	ChallengeTTL time.Duration
	SessionTTL   time.Duration

	// SMTP settings for the email code channel
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	// WhatsApp gateway settings for the phone code channel
	WhatsAppAPIURL   string
	WhatsAppUsername string
	WhatsAppPassword string
	WhatsAppSenderID string

	// Base URL of the client review portal, used for QR code links
	PortalBaseURL string
}

// Load reads configuration from the environment. It fails fast on the
// settings the service cannot run without.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         os.Getenv("MONGO_URI"),
		DBName:           getEnv("DB_NAME", "aprova"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		ChallengeTTL:     getDuration("OTP_CHALLENGE_TTL", 10*time.Minute),
		SessionTTL:       getDuration("APPROVAL_SESSION_TTL", 7*24*time.Hour),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", 2525),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		FromEmail:        os.Getenv("FROM_EMAIL"),
		WhatsAppAPIURL:   os.Getenv("WHATSAPP_API_URL"),
		WhatsAppUsername: os.Getenv("WHATSAPP_USERNAME"),
		WhatsAppPassword: os.Getenv("WHATSAPP_PASSWORD"),
		WhatsAppSenderID: getEnv("WHATSAPP_SENDER_ID", "Aprova"),
		PortalBaseURL:    getEnv("PORTAL_BASE_URL", "https://portal.aprovacriativos.com"),
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGODB_URI")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI or MONGODB_URI environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
