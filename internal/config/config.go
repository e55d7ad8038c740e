// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBPath      string

	// Gemini API settings.
	GeminiAPIKey string
	ChatModel    string
	SpeechModel  string

	// ContactEmail is the address the sendEmail assistant action delivers to.
	ContactEmail string

	// CatalogLatency is the simulated latency of the portfolio data API.
	CatalogLatency time.Duration

	// NotifyDelay is the simulated duration of the email send effect.
	NotifyDelay time.Duration

	// ActionResetDelay is how long the completed action badge stays up
	// before the dispatcher resets it to idle.
	ActionResetDelay time.Duration

	RateLimit RateLimitConfig
}

// RateLimitConfig controls per-visitor chat throttling.
type RateLimitConfig struct {
	RequestsPerWindow int
	WindowDuration    time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		FrontendURL:      getEnv("FRONTEND_URL", ""),
		DBPath:           getEnv("DB_PATH", "./data/portfolio.db"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		ChatModel:        getEnv("GEMINI_CHAT_MODEL", "gemini-3-flash-preview"),
		SpeechModel:      getEnv("GEMINI_SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
		ContactEmail:     getEnv("CONTACT_EMAIL", "alex@alextech.dev"),
		CatalogLatency:   getEnvDuration("CATALOG_LATENCY", 800*time.Millisecond),
		NotifyDelay:      getEnvDuration("NOTIFY_DELAY", 2*time.Second),
		ActionResetDelay: getEnvDuration("ACTION_RESET_DELAY", 5*time.Second),
		RateLimit: RateLimitConfig{
			RequestsPerWindow: getEnvInt("RATE_LIMIT_REQUESTS", 10),
			WindowDuration:    getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ChatModel == "" {
		return fmt.Errorf("GEMINI_CHAT_MODEL cannot be empty")
	}
	if c.ContactEmail == "" {
		return fmt.Errorf("CONTACT_EMAIL cannot be empty")
	}
	if c.RateLimit.RequestsPerWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be > 0")
	}
	if c.RateLimit.WindowDuration <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}
	return nil
}

// AIEnabled returns true when a Gemini API key is configured. Without a key
// the chat, resume, and speech features are disabled and the rest of the
// site still works.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
