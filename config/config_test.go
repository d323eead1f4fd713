package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CACHE_TTL", "RECENCY_WINDOW", "FETCH_TIMEOUT", "NATS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("expected default TTL 15m, got %v", cfg.CacheTTL)
	}
	if cfg.RecencyWindow != 7*24*time.Hour {
		t.Errorf("expected default window 168h, got %v", cfg.RecencyWindow)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("expected default fetch timeout 10s, got %v", cfg.FetchTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("RECENCY_WINDOW", "24h")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg := Load()
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected TTL 5m, got %v", cfg.CacheTTL)
	}
	if cfg.RecencyWindow != 24*time.Hour {
		t.Errorf("expected window 24h, got %v", cfg.RecencyWindow)
	}
	if cfg.NATSUrl != "nats://broker:4222" {
		t.Errorf("unexpected NATS URL: %q", cfg.NATSUrl)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "yesterday")

	cfg := Load()
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("expected fallback to 15m, got %v", cfg.CacheTTL)
	}
}
