package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "vowsuite"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Venue lock is off by default: admission keeps the historical
	// check-then-act behavior unless a deployment opts into locking.
	DefaultVenueLockEnabled = false
	DefaultVenueLockTTL     = 10 * time.Second

	DefaultMaxNoteLength = 2000

	DefaultNotificationsTopic    = "booking.notifications"
	DefaultNotificationsDLQTopic = "booking.notifications.dlq"
	DefaultNotificationsGroupID  = "notifications-service"

	DefaultPaginationLimit = 100
	DefaultLogLevel        = "info"
)
