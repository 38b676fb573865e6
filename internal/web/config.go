package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the web server configuration.
type Config struct {
	Addr          string
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Dev disables the Secure flag on the session cookie so the widget
	// works over plain http://localhost.
	Dev bool

	// SharedKey hands the server's own oracle credential to every new
	// browser session.
	SharedKey bool
}

// Load reads configuration from MATHBUDDY_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("MATHBUDDY_ADDR", ":8080"),
		SessionTTL:    getEnvDuration("MATHBUDDY_SESSION_TTL", 60*time.Minute),
		SweepInterval: getEnvDuration("MATHBUDDY_SWEEP_INTERVAL", time.Minute),
		Dev:           getEnvBool("MATHBUDDY_DEV", false),
		SharedKey:     getEnvBool("MATHBUDDY_SHARED_KEY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("MATHBUDDY_ADDR cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("MATHBUDDY_SESSION_TTL must be > 0")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("MATHBUDDY_SWEEP_INTERVAL must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Bare integers are minutes.
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Minute
	}
	return fallback
}
