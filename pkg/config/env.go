package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvIdentityProviderURL     = "IDENTITY_PROVIDER_URL"
	EnvIdentityProviderTimeout = "IDENTITY_PROVIDER_TIMEOUT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRoomCacheTTL = "ROOM_CACHE_TTL"

	EnvBookingAllowPast   = "BOOKING_ALLOW_PAST"
	EnvBookingLockTTL     = "BOOKING_LOCK_TTL"
	EnvBookingLockRetries = "BOOKING_LOCK_RETRIES"
	EnvBookingLockBackoff = "BOOKING_LOCK_BACKOFF"

	EnvEventBufferSize = "EVENT_BUFFER_SIZE"

	EnvKafkaBrokers        = "KAFKA_BROKERS"
	EnvKafkaTopic          = "KAFKA_TOPIC"
	EnvKafkaDLQTopic       = "KAFKA_DLQ_TOPIC"
	EnvKafkaMaxAttempts    = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaBatchTimeout   = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaRequireAcks    = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaCompression    = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaPublishTimeout = "KAFKA_PUBLISH_TIMEOUT"
)
