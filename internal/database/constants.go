package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// DefaultMaxConnections is used when no pool size is configured
	DefaultMaxConnections = 10

	// DefaultMaxConnIdleTime closes connections idle longer than this
	DefaultMaxConnIdleTime = 5 * time.Minute

	// DefaultMaxConnLifetime recycles connections older than this
	DefaultMaxConnLifetime = 30 * time.Minute
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString     = "failed to parse connection string"
	ErrMsgFailedToCreatePool          = "failed to create connection pool"
	ErrMsgFailedToPingDatabase        = "failed to ping database"
	ErrMsgFailedToSetDialect          = "failed to set migration dialect"
	ErrMsgFailedToApplyMigrations     = "failed to apply migrations"
	ErrMsgFailedToRollBackMigration   = "failed to roll back migration"
	ErrMsgFailedToReadMigrationStatus = "failed to read migration status"
	ErrMsgFailedToBeginTransaction    = "failed to begin transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
