package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CatalogLatency != 800*time.Millisecond {
		t.Errorf("CatalogLatency = %v, want 800ms", cfg.CatalogLatency)
	}
	if cfg.NotifyDelay != 2*time.Second {
		t.Errorf("NotifyDelay = %v, want 2s", cfg.NotifyDelay)
	}
	if cfg.ActionResetDelay != 5*time.Second {
		t.Errorf("ActionResetDelay = %v, want 5s", cfg.ActionResetDelay)
	}
	if cfg.RateLimit.RequestsPerWindow != 10 {
		t.Errorf("RateLimit.RequestsPerWindow = %d, want 10", cfg.RateLimit.RequestsPerWindow)
	}
	if cfg.AIEnabled() {
		t.Error("AIEnabled() = true without GEMINI_API_KEY")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false with no FRONTEND_URL")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("CATALOG_LATENCY", "10ms")
	t.Setenv("RATE_LIMIT_REQUESTS", "3")
	t.Setenv("FRONTEND_URL", "https://alextech.dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.AIEnabled() {
		t.Error("AIEnabled() = false with GEMINI_API_KEY set")
	}
	if cfg.CatalogLatency != 10*time.Millisecond {
		t.Errorf("CatalogLatency = %v, want 10ms", cfg.CatalogLatency)
	}
	if cfg.RateLimit.RequestsPerWindow != 3 {
		t.Errorf("RateLimit.RequestsPerWindow = %d, want 3", cfg.RateLimit.RequestsPerWindow)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production FRONTEND_URL")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "many")
	t.Setenv("CATALOG_LATENCY", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RateLimit.RequestsPerWindow != 10 {
		t.Errorf("RateLimit.RequestsPerWindow = %d, want fallback 10", cfg.RateLimit.RequestsPerWindow)
	}
	if cfg.CatalogLatency != 800*time.Millisecond {
		t.Errorf("CatalogLatency = %v, want fallback 800ms", cfg.CatalogLatency)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Port:         "8080",
		DBPath:       "./data/test.db",
		ChatModel:    "gemini-3-flash-preview",
		ContactEmail: "alex@alextech.dev",
		RateLimit:    RateLimitConfig{RequestsPerWindow: 10, WindowDuration: time.Minute},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate(valid) error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"empty chat model", func(c *Config) { c.ChatModel = "" }},
		{"empty contact email", func(c *Config) { c.ContactEmail = "" }},
		{"zero rate limit", func(c *Config) { c.RateLimit.RequestsPerWindow = 0 }},
		{"zero rate window", func(c *Config) { c.RateLimit.WindowDuration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() error = nil, want error")
			}
		})
	}
}
