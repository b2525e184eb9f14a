// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// RedisAddr is the Redis host:port for the session flags store.
	// Defaults to "localhost:6379".
	RedisAddr string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CatalogURL is the package feed location. Required.
	CatalogURL string

	// BlogURL is the blog feed location. Optional; blog endpoints answer
	// 503 when unset and the feed never loads.
	BlogURL string

	// SheetWebhookURL is the Apps Script endpoint that appends lead rows to
	// the spreadsheet. Optional; empty disables the sink.
	SheetWebhookURL string

	// WhatsAppNumber is the agency number used in wa.me deep links.
	// Defaults to the number hardcoded in the lead popup.
	WhatsAppNumber string

	// RequireBackendAck decides whether a lead must be persisted before the
	// WhatsApp link is handed out. Defaults to false: WhatsApp is the
	// channel of record and the database row is best-effort.
	RequireBackendAck bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		BlogURL:           os.Getenv("BLOG_URL"),
		SheetWebhookURL:   os.Getenv("SHEET_WEBHOOK_URL"),
		WhatsAppNumber:    getEnv("WHATSAPP_NUMBER", "9151491889"),
		RequireBackendAck: getEnv("REQUIRE_BACKEND_ACK", "false") == "true",
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.CatalogURL = os.Getenv("CATALOG_URL")
	if cfg.CatalogURL == "" {
		missing = append(missing, "CATALOG_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
