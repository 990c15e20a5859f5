package config

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Host          string
	Port          string
	JWTSecret     string
	TokenLifetime time.Duration
	RedisURL      string
}

// Load reads process configuration from the environment. A missing
// signing secret is a fatal startup error, never a per-request one.
func Load() *Config {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		logrus.Fatal("JWT_SECRET environment variable is required")
	}

	lifetime := time.Hour
	if v := getEnv("TOKEN_LIFETIME", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logrus.Fatalf("Invalid TOKEN_LIFETIME value %q: %v", v, err)
		}
		lifetime = d
	}

	return &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     secret,
		TokenLifetime: lifetime,
		RedisURL:      getEnv("REDIS_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
