package config

import (
	"os"
	"strconv"
	"strings"

	platformstrings "citizengate/pkg/platform/strings"
)

// Config captures process-level configuration. Optional backends (redis,
// postgres, kafka) stay empty when unconfigured and the in-memory
// implementations take over.
type Config struct {
	Addr          string
	JWTSigningKey string

	RedisURL    string
	PostgresDSN string

	KafkaBrokers    []string
	KafkaAuditTopic string

	// Requests per client IP per minute. Zero disables throttling.
	RateLimitPerMinute int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("CITIZENGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "citizengate.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = platformstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	rateLimit := 120
	if raw := os.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			rateLimit = n
		}
	}

	return Config{
		Addr:               addr,
		JWTSigningKey:      os.Getenv("JWT_SIGNING_KEY"),
		RedisURL:           os.Getenv("REDIS_URL"),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		KafkaBrokers:       brokers,
		KafkaAuditTopic:    topic,
		RateLimitPerMinute: rateLimit,
	}
}
