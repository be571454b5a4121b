package rewardlog

// DefaultRetentionDays is how long audit rows are kept before cleanup.
const DefaultRetentionDays = 90

// Log messages
const (
	LogMsgPayloadNotLoggable = "Event payload cannot be logged, skipping"
	LogMsgLogEventFailed     = "Failed to write audit row"
	LogMsgEventLogged        = "Audit row written"
	LogMsgCleanupCompleted   = "Audit log cleanup completed"
)
