package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost           string
	KafkaConsumerGroup  string
	KafkaOrderPaidTopic string

	AdapterTimeout           time.Duration
	MaxRetries               int
	TrackingSyncSchedule     string
	RetrySweepSchedule       string
	DispatchWorkers          int
	DispatchQueueSize        int
	TrackingSyncConcurrency  int
	SupplierAPIRatePerSecond float64
}

const (
	defaultHTTPPort                 = "8080"
	defaultMaxRetries               = 3
	defaultSupplierAPIRatePerSecond = 10
)

// ConfigFromEnv reads the configuration through getenv, usually os.Getenv. Missing
// tuning values fall back to defaults; malformed ones are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:   p.string("HTTP_PORT", defaultHTTPPort),
		DBHost:     p.string("DB_HOST", ""),
		DBPort:     p.string("DB_PORT", "5432"),
		DBUser:     p.string("DB_USER", ""),
		DBPassword: p.string("DB_PASSWORD", ""),
		DBName:     p.string("DB_NAME", ""),
		DBSslMode:  p.string("DB_SSLMODE", "disable"),

		KafkaHost:           p.string("KAFKA_HOST", ""),
		KafkaConsumerGroup:  p.string("KAFKA_CONSUMER_GROUP", "fulfillment"),
		KafkaOrderPaidTopic: p.string("KAFKA_ORDER_PAID_TOPIC", "orders.paid"),

		AdapterTimeout:           p.duration("ADAPTER_TIMEOUT", commands.DefaultAdapterTimeout),
		MaxRetries:               p.int("MAX_RETRIES", defaultMaxRetries),
		TrackingSyncSchedule:     p.string("TRACKING_SYNC_SCHEDULE", jobs.DefaultTrackingSyncSchedule),
		RetrySweepSchedule:       p.string("RETRY_SWEEP_SCHEDULE", jobs.DefaultRetrySweepSchedule),
		DispatchWorkers:          p.int("DISPATCH_WORKERS", jobs.DefaultDispatchWorkers),
		DispatchQueueSize:        p.int("DISPATCH_QUEUE_SIZE", jobs.DefaultDispatchQueueSize),
		TrackingSyncConcurrency:  p.int("TRACKING_SYNC_CONCURRENCY", commands.DefaultSyncConcurrency),
		SupplierAPIRatePerSecond: p.float("SUPPLIER_API_RATE_PER_SECOND", defaultSupplierAPIRatePerSecond),
	}

	if cfg.DBHost == "" {
		p.err = errors.Join(p.err, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if cfg.MaxRetries < 1 {
		p.err = errors.Join(p.err, errs.NewValueIsOutOfRangeError("MAX_RETRIES", cfg.MaxRetries, 1, "unbounded"))
	}

	return cfg, p.err
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty when Kafka is not configured.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type envParser struct {
	getenv func(string) string
	err    error
}

func (p *envParser) string(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) int(key string, fallback int) int {
	raw := p.string(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = errors.Join(p.err, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (p *envParser) float(key string, fallback float64) float64 {
	raw := p.string(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = errors.Join(p.err, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.string(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.err = errors.Join(p.err, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}
