// Package config builds runtime configuration from the environment so main
// stays lean. Every deployment-facing knob lives here.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the full runtime configuration for the service.
type Config struct {
	Addr           string
	PostgresURL    string
	RedisURL       string
	JWTSigningKey  string
	JWTIssuer      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	UploadDir      string
	UploadMaxBytes int64
	AIBaseURL      string
	AIAPIKey       string
	AIModel        string
	DemoMode       bool
	CacheTTL       time.Duration
}

// FromEnv builds a Config from environment variables. Empty PostgresURL means
// in-memory stores; empty RedisURL disables caching. The JWT key default is
// for development only.
func FromEnv() Config {
	cfg := Config{
		Addr:           getenv("REGWISE_ADDR", ":5000"),
		PostgresURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSigningKey:  getenv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTIssuer:      getenv("JWT_ISSUER", "regwise"),
		TokenTTL:       getduration("TOKEN_TTL", 7*24*time.Hour),
		AllowedOrigins: splitOrigins(getenv("FRONTEND_ORIGIN", "http://localhost:5173")),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: getint64("UPLOAD_MAX_BYTES", 5<<20),
		AIBaseURL:      getenv("AI_BASE_URL", "https://api.openai.com"),
		AIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		AIModel:        getenv("AI_MODEL", "gpt-4o-mini"),
		DemoMode:       os.Getenv("DEMO_MODE") == "true",
		CacheTTL:       getduration("CACHE_TTL", 30*time.Second),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getint64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
