package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ruudy-sib/udpout/internal/domain"
)

// Config holds all application configuration values.
type Config struct {
	// HTTP server (ingest, health, metrics)
	HTTPAddr string

	// UDP output
	UDPHost        string
	UDPPort        string // literal port or field reference template
	RetryCount     int
	RetryBackoffMs int
	Codec          string
	LineFormat     string

	// Event sources to drain: any of "redis", "kafka", "nats"
	Sources []string

	// Redis
	RedisMode          string // "standalone" (default), "sentinel", "cluster"
	RedisAddr          string // standalone: host:port
	RedisPassword      string
	RedisDB            int
	RedisMasterName    string   // sentinel: master name
	RedisSentinelAddrs []string // sentinel: sentinel node addresses
	RedisClusterAddrs  []string // cluster: cluster node addresses
	RedisListKey       string

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// NATS
	NATSURL     string
	NATSSubject string

	// Worker
	PollInterval time.Duration
	BatchSize    int

	// Application
	Environment string
	LogLevel    string
}

// New creates a Config populated from environment variables with sensible defaults.
// Malformed numeric values keep their defaults; use Load to surface them.
func New() *Config {
	cfg := defaults()
	_ = cfg.applyEnv()
	return cfg
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in that order, then validates it.
func Load() (*Config, error) {
	cfg := defaults()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTPAddr:       ":8080",
		RetryCount:     0,
		RetryBackoffMs: domain.DefaultRetryBackoffMs,
		Codec:          domain.DefaultCodec,
		LineFormat:     domain.DefaultLineFormat,
		RedisMode:      "standalone",
		RedisAddr:      "localhost:6379",
		RedisListKey:   domain.DefaultRedisListKey,
		KafkaBrokers:   []string{"localhost:9092"},
		KafkaTopic:     "events",
		KafkaGroupID:   "udpout",
		NATSURL:        "nats://localhost:4222",
		NATSSubject:    "events",
		PollInterval:   domain.DefaultPollInterval,
		BatchSize:      domain.DefaultBatchSize,
		Environment:    "local",
		LogLevel:       "info",
	}
}

func (c *Config) applyEnv() error {
	var errs []error

	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.UDPHost = getEnv("UDP_HOST", c.UDPHost)
	c.UDPPort = getEnv("UDP_PORT", c.UDPPort)
	c.Codec = getEnv("UDP_CODEC", c.Codec)
	c.LineFormat = getEnv("UDP_LINE_FORMAT", c.LineFormat)
	c.RetryCount = getEnvInt("UDP_RETRY_COUNT", c.RetryCount, &errs)
	c.RetryBackoffMs = getEnvInt("UDP_RETRY_BACKOFF_MS", c.RetryBackoffMs, &errs)

	if v := getEnv("SOURCES", ""); v != "" {
		c.Sources = splitList(v)
	}

	c.RedisMode = getEnv("REDIS_MODE", c.RedisMode)
	if host, ok := os.LookupEnv("REDIS_HOST"); ok {
		c.RedisAddr = host + ":" + getEnv("REDIS_PORT", "6379")
	}
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB, &errs)
	c.RedisMasterName = getEnv("REDIS_MASTER_NAME", c.RedisMasterName)
	if v := getEnv("REDIS_SENTINEL_ADDRS", ""); v != "" {
		c.RedisSentinelAddrs = splitList(v)
	}
	if v := getEnv("REDIS_CLUSTER_ADDRS", ""); v != "" {
		c.RedisClusterAddrs = splitList(v)
	}
	c.RedisListKey = getEnv("REDIS_LIST_KEY", c.RedisListKey)

	if v := getEnv("KAFKA_BROKERS", ""); v != "" {
		c.KafkaBrokers = splitList(v)
	}
	c.KafkaTopic = getEnv("KAFKA_TOPIC", c.KafkaTopic)
	c.KafkaGroupID = getEnv("KAFKA_GROUP_ID", c.KafkaGroupID)

	c.NATSURL = getEnv("NATS_URL", c.NATSURL)
	c.NATSSubject = getEnv("NATS_SUBJECT", c.NATSSubject)

	if v := getEnv("POLL_INTERVAL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("POLL_INTERVAL: %w", err))
		} else {
			c.PollInterval = d
		}
	}
	c.BatchSize = getEnvInt("BATCH_SIZE", c.BatchSize, &errs)

	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	return errors.Join(errs...)
}

// HasSource reports whether the named event source is enabled.
func (c *Config) HasSource(name string) bool {
	for _, s := range c.Sources {
		if s == name {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
