// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIME_ZONE must resolve in minimal containers
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StateKey is the key the state blob is stored under. Defaults to "trucks-log".
	StateKey string

	// Location is the time zone used for log dates, file dates and the report.
	// Set with TIME_ZONE; defaults to Asia/Jerusalem.
	Location *time.Location

	// MaxUploadFiles is the largest registry upload batch accepted. Defaults to 10.
	MaxUploadFiles int

	// MaxUploadBytes limits request bodies. Defaults to 10 MiB.
	MaxUploadBytes int64

	// UploadConcurrency bounds how many files of a batch are read at once. Defaults to 4.
	UploadConcurrency int

	// AutoMigrate applies pending migrations at startup. Defaults to true.
	AutoMigrate bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// any variables whose values cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StateKey:    getEnv("STATE_KEY", "trucks-log"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	loc, err := time.LoadLocation(getEnv("TIME_ZONE", "Asia/Jerusalem"))
	if err != nil {
		invalid = append(invalid, "TIME_ZONE")
	}
	cfg.Location = loc

	var ok bool
	if cfg.MaxUploadFiles, ok = getPositiveInt("MAX_UPLOAD_FILES", 10); !ok {
		invalid = append(invalid, "MAX_UPLOAD_FILES")
	}
	maxBytes, ok := getPositiveInt("MAX_UPLOAD_BYTES", 10<<20)
	if !ok {
		invalid = append(invalid, "MAX_UPLOAD_BYTES")
	}
	cfg.MaxUploadBytes = int64(maxBytes)
	if cfg.UploadConcurrency, ok = getPositiveInt("UPLOAD_CONCURRENCY", 4); !ok {
		invalid = append(invalid, "UPLOAD_CONCURRENCY")
	}
	if cfg.AutoMigrate, ok = getBool("AUTO_MIGRATE", true); !ok {
		invalid = append(invalid, "AUTO_MIGRATE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
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

// getPositiveInt parses key as an integer greater than zero.
// ok is false when the variable is set but not a positive integer.
func getPositiveInt(key string, fallback int) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback, false
	}
	return n, true
}

// getBool parses key with strconv.ParseBool.
func getBool(key string, fallback bool) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, false
	}
	return b, true
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
