// Package config builds service configuration from environment variables so
// main stays lean. A .env file is honored in development.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything the server needs to wire its dependencies.
// Empty DatabaseURL / RedisURL / KafkaBrokers disable the respective backend;
// the server falls back to in-memory implementations.
type Config struct {
	Addr string

	DatabaseURL string

	RedisURL    string
	SnapshotTTL time.Duration

	KafkaBrokers []string
	AuditTopic   string
}

// Load reads configuration from the environment, loading a .env file first if
// one is present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:         envOr("KITLEDGER_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		SnapshotTTL:  envDuration("SNAPSHOT_CACHE_TTL", 30*time.Second),
		KafkaBrokers: envList("KAFKA_BROKERS"),
		AuditTopic:   envOr("AUDIT_TOPIC", "kitledger.dues.audit"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
