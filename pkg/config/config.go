package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bokning/pkg/client"
	"bokning/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	IdentityProviderURL     string
	IdentityProviderTimeout time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RoomCacheTTL time.Duration

	BookingAllowPast   bool
	BookingLockTTL     time.Duration
	BookingLockRetries int
	BookingLockBackoff time.Duration

	EventBufferSize int

	KafkaBrokers        []string
	KafkaTopic          string
	KafkaDLQTopic       string
	KafkaMaxAttempts    int
	KafkaBatchTimeout   time.Duration
	KafkaRequireAcks    int
	KafkaCompression    string
	KafkaPublishTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		IdentityProviderURL:     getEnvStr(EnvIdentityProviderURL, DefaultIdentityProviderURL),
		IdentityProviderTimeout: getEnvDuration(EnvIdentityProviderTimeout, DefaultIdentityProviderTimeout),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RoomCacheTTL: getEnvDuration(EnvRoomCacheTTL, DefaultRoomCacheTTL),

		BookingAllowPast:   getEnvBool(EnvBookingAllowPast, DefaultBookingAllowPast),
		BookingLockTTL:     getEnvDuration(EnvBookingLockTTL, DefaultBookingLockTTL),
		BookingLockRetries: getEnvNum(EnvBookingLockRetries, DefaultBookingLockRetries),
		BookingLockBackoff: getEnvDuration(EnvBookingLockBackoff, DefaultBookingLockBackoff),

		EventBufferSize: getEnvNum(EnvEventBufferSize, DefaultEventBufferSize),

		KafkaBrokers:        getEnvList(EnvKafkaBrokers),
		KafkaTopic:          getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),
		KafkaDLQTopic:       getEnvStr(EnvKafkaDLQTopic, ""),
		KafkaMaxAttempts:    getEnvNum(EnvKafkaMaxAttempts, DefaultKafkaMaxAttempts),
		KafkaBatchTimeout:   getEnvDuration(EnvKafkaBatchTimeout, DefaultKafkaBatchTimeout),
		KafkaRequireAcks:    getEnvNum(EnvKafkaRequireAcks, DefaultKafkaRequireAcks),
		KafkaCompression:    getEnvStr(EnvKafkaCompression, DefaultKafkaCompression),
		KafkaPublishTimeout: getEnvDuration(EnvKafkaPublishTimeout, DefaultKafkaPublishTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// KafkaEnabled reports whether the outbound event relay should be wired up.
func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.IdentityProviderURL == "" {
		errors = append(errors, "IdentityProviderURL cannot be empty")
	}
	if cfg.IdentityProviderTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdentityProviderTimeout must be positive, got: %s", cfg.IdentityProviderTimeout))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RoomCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("RoomCacheTTL must be positive, got: %s", cfg.RoomCacheTTL))
	}
	if cfg.BookingLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("BookingLockTTL must be positive, got: %s", cfg.BookingLockTTL))
	}
	if cfg.BookingLockRetries < 0 {
		errors = append(errors, fmt.Sprintf("BookingLockRetries cannot be negative, got: %d", cfg.BookingLockRetries))
	}
	if cfg.BookingLockBackoff <= 0 {
		errors = append(errors, fmt.Sprintf("BookingLockBackoff must be positive, got: %s", cfg.BookingLockBackoff))
	}
	if cfg.EventBufferSize <= 0 {
		errors = append(errors, fmt.Sprintf("EventBufferSize must be positive, got: %d", cfg.EventBufferSize))
	}

	if cfg.KafkaEnabled() {
		if cfg.KafkaTopic == "" {
			errors = append(errors, "KafkaTopic cannot be empty when brokers are configured")
		}
		if cfg.KafkaMaxAttempts <= 0 {
			errors = append(errors, fmt.Sprintf("KafkaMaxAttempts must be positive, got: %d", cfg.KafkaMaxAttempts))
		}
		if cfg.KafkaBatchTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("KafkaBatchTimeout must be positive, got: %s", cfg.KafkaBatchTimeout))
		}
		if cfg.KafkaRequireAcks != -1 && cfg.KafkaRequireAcks != 0 && cfg.KafkaRequireAcks != 1 {
			errors = append(errors, fmt.Sprintf("KafkaRequireAcks must be -1, 0, or 1, got: %d", cfg.KafkaRequireAcks))
		}
		validCompressions := map[string]bool{
			"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
		}
		if !validCompressions[cfg.KafkaCompression] {
			errors = append(errors, fmt.Sprintf("KafkaCompression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.KafkaCompression))
		}
		if cfg.KafkaPublishTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("KafkaPublishTimeout must be positive, got: %s", cfg.KafkaPublishTimeout))
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"identity_provider_url", cfg.IdentityProviderURL,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"room_cache_ttl", cfg.RoomCacheTTL,
		"booking_allow_past", cfg.BookingAllowPast,
		"booking_lock_ttl", cfg.BookingLockTTL,
		"booking_lock_retries", cfg.BookingLockRetries,
		"event_buffer_size", cfg.EventBufferSize,
		"kafka_enabled", cfg.KafkaEnabled(),
		"kafka_topic", cfg.KafkaTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
