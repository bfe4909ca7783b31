// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "dev-secret-change-in-production-32bytes"

// Config holds everything cmd/server needs to start.
type Config struct {
	Addr             string
	FrontendURL      string
	SessionSecret    string
	AuthRequired     bool
	Operators        []string
	ContactRateLimit int // submissions per IP per minute
	TrustedProxies   int // reverse proxies appending to X-Forwarded-For
	LogLevel         string
	ShutdownTimeout  time.Duration
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults for unset keys.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Addr:          get("ADDR", ":8080"),
		FrontendURL:   get("FRONTEND_URL", "http://localhost:5173"),
		SessionSecret: get("SESSION_SECRET", devSessionSecret),
		AuthRequired:  get("AUTH_REQUIRED", "false") == "true",
		Operators:     ParseList(get("OPERATORS", "")),
		LogLevel:      get("LOG_LEVEL", "INFO"),
	}

	limit, err := strconv.Atoi(get("CONTACT_RATE_LIMIT", "5"))
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("CONTACT_RATE_LIMIT: %q is not a positive integer", get("CONTACT_RATE_LIMIT", ""))
	}
	cfg.ContactRateLimit = limit

	proxies, err := strconv.Atoi(get("TRUSTED_PROXY_COUNT", "1"))
	if err != nil || proxies < 0 {
		return nil, fmt.Errorf("TRUSTED_PROXY_COUNT: %q is not a non-negative integer", get("TRUSTED_PROXY_COUNT", ""))
	}
	cfg.TrustedProxies = proxies

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %q is not a positive duration", get("SHUTDOWN_TIMEOUT", ""))
	}
	cfg.ShutdownTimeout = timeout

	return cfg, nil
}

// UsesDevSecret reports whether SESSION_SECRET was left at its default.
func (c *Config) UsesDevSecret() bool {
	return c.SessionSecret == devSessionSecret
}

// ParseList splits a comma-separated value, trimming blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
