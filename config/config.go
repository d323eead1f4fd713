package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port          string
	CacheTTL      time.Duration
	RecencyWindow time.Duration
	FetchTimeout  time.Duration
	NATSUrl       string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		CacheTTL:      getDurationEnv("CACHE_TTL", "15m"),
		RecencyWindow: getDurationEnv("RECENCY_WINDOW", "168h"),
		FetchTimeout:  getDurationEnv("FETCH_TIMEOUT", "10s"),
		NATSUrl:       getEnv("NATS_URL", ""),
	}

	log.Printf("Config loaded - CacheTTL: %v, RecencyWindow: %v, FetchTimeout: %v",
		cfg.CacheTTL, cfg.RecencyWindow, cfg.FetchTimeout)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
