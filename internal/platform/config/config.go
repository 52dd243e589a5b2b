package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Clinical constants for the
// verification pipeline live in internal/medadmin/config; this package only
// wires the process to its collaborators.
type Server struct {
	Addr        string
	PostgresURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// RedisConfig holds connection settings for the optional Redis-backed
// administration lock. An empty URL means the in-memory lock is used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the optional audit fan-out publisher. Empty
// seeds disable publishing; the durable audit store is unaffected.
type KafkaConfig struct {
	Seeds      []string
	AuditTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MEDGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	auditTopic := os.Getenv("MEDGATE_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "medgate.administration-audit"
	}

	var seeds []string
	if raw := os.Getenv("MEDGATE_KAFKA_SEEDS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				seeds = append(seeds, s)
			}
		}
	}

	return Server{
		Addr:        addr,
		PostgresURL: os.Getenv("MEDGATE_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("MEDGATE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Seeds:      seeds,
			AuditTopic: auditTopic,
		},
	}
}
