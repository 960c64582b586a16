package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every environment knob the API binary reads. Values come
// from the process environment; main loads .env first via godotenv.
type Config struct {
	Port        string
	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	// RedisAddr is optional; empty disables the listing cache.
	RedisAddr     string
	RedisPassword string

	// ClassifierTimeout bounds one moderation call to the model. On expiry
	// the batch takes the same fallback path as a classifier error.
	ClassifierTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:              getenv("PORT", "8080"),
		DatabaseURL:       getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=wrkbl port=5432 sslmode=disable"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		ClassifierTimeout: getenvDuration("CLASSIFIER_TIMEOUT_SECONDS", 45*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
