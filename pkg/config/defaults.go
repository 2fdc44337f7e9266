package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bokning"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultIdentityProviderURL     = "http://localhost:8081"
	DefaultIdentityProviderTimeout = 5 * time.Second

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRoomCacheTTL = 30 * time.Minute

	DefaultBookingAllowPast   = false
	DefaultBookingLockTTL     = 10 * time.Second
	DefaultBookingLockRetries = 20
	DefaultBookingLockBackoff = 50 * time.Millisecond

	DefaultEventBufferSize = 16

	DefaultKafkaTopic          = "booking-events"
	DefaultKafkaMaxAttempts    = 3
	DefaultKafkaBatchTimeout   = 100 * time.Millisecond
	DefaultKafkaRequireAcks    = -1
	DefaultKafkaCompression    = "snappy"
	DefaultKafkaPublishTimeout = 5 * time.Second

	DefaultPaginationLimit = 100
)
