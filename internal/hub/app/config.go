package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Required: issuer claim for session tokens
	BootstrapToken string // Optional: token required to perform bootstrap

	SessionKeyPath string        // Optional: path to a PKCS8 PEM Ed25519 key; empty generates an ephemeral key
	SessionTTL     time.Duration // Optional: session token lifetime (default: 24h)

	FrontendBaseURL string // Base URL invitation acceptance links point at

	DatabaseFile string // Optional: path to SQLite database file (default: ./hub.db)

	SMTPHost     string // Optional: empty host enables the console mailer
	SMTPPort     int    // Optional: SMTP port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // Sender address for invitation email

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:          getEnvOrDefault("HUB_ISSUER", "projecthub"),
		BootstrapToken:  os.Getenv("HUB_BOOTSTRAP_TOKEN"), // Optional: if unset, bootstrap is disabled
		SessionKeyPath:  os.Getenv("HUB_SESSION_KEY_PATH"),
		SessionTTL:      getEnvDurationOrDefault("HUB_SESSION_TTL", 24*time.Hour),
		FrontendBaseURL: getEnvOrDefault("HUB_FRONTEND_BASE_URL", "http://localhost:3000"),
		DatabaseFile:    getEnvOrDefault("HUB_DATABASE_FILE", "hub.db"),

		SMTPHost:     os.Getenv("HUB_SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("HUB_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("HUB_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("HUB_SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("HUB_SMTP_FROM", "no-reply@projecthub.local"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
