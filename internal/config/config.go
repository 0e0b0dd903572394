package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	APIBaseURL  string
	HTTPTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:3001"),
		HTTPTimeout: getDuration("HTTP_TIMEOUT_SECONDS", 10),
	}

	if cfg.Env == "production" && os.Getenv("API_BASE_URL") == "" {
		slog.Error("API_BASE_URL must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
	}
	return time.Duration(fallbackSeconds) * time.Second
}
