package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// RedisConfig captures the enrichment cache connection. An empty URL
// means Redis is not configured and the in-memory cache is used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig captures the audit sink. No brokers means audit events
// stay in the in-process store only.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config is the full application configuration.
type Config struct {
	Server Server
	Redis  RedisConfig
	Kafka  KafkaConfig

	// EnrichmentCacheTTL bounds how long registry snapshots are reused.
	EnrichmentCacheTTL time.Duration

	// SeedVendors pre-populates the ledger with synthetic vendors at
	// startup. Zero disables seeding.
	SeedVendors int
}

// FromEnv builds the configuration from environment variables so main
// stays lean.
func FromEnv() Config {
	addr := os.Getenv("VENDORWATCH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	kafkaTopic := os.Getenv("VENDORWATCH_KAFKA_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "vendorwatch.audit"
	}

	return Config{
		Server: Server{Addr: addr},
		Redis: RedisConfig{
			URL:          os.Getenv("VENDORWATCH_REDIS_URL"),
			PoolSize:     envInt("VENDORWATCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("VENDORWATCH_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("VENDORWATCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("VENDORWATCH_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("VENDORWATCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("VENDORWATCH_KAFKA_BROKERS"),
			Topic:   kafkaTopic,
		},
		EnrichmentCacheTTL: envDuration("VENDORWATCH_ENRICHMENT_CACHE_TTL", 15*time.Minute),
		SeedVendors:        envInt("VENDORWATCH_SEED_VENDORS", 0),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
