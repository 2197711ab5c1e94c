package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	JWTSigningKey string
	JWTIssuer     string

	// LookupTimeout bounds every identity, ownership, and registration store
	// call. Lookups that exceed it fail closed.
	LookupTimeout time.Duration

	// Kafka audit sink; disabled when no brokers are configured.
	KafkaBrokers    []string
	AuditTopic      string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:            envOr("RELIEFOPS_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("RELIEFOPS_DATABASE_URL"),
		RedisURL:        os.Getenv("RELIEFOPS_REDIS_URL"),
		JWTSigningKey:   envOr("RELIEFOPS_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       envOr("RELIEFOPS_JWT_ISSUER", "reliefops"),
		LookupTimeout:   durationOr("RELIEFOPS_LOOKUP_TIMEOUT", 3*time.Second),
		AuditTopic:      envOr("RELIEFOPS_AUDIT_TOPIC", "reliefops.pii-access"),
		ShutdownTimeout: durationOr("RELIEFOPS_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if brokers := os.Getenv("RELIEFOPS_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
