package gacha

// MaxDrawCount bounds a single draw request.
const MaxDrawCount = 100

// Event source tag for grant events produced by draws.
const GrantSource = "gacha"

// Log messages
const (
	LogMsgDrawCalled        = "Draw called"
	LogMsgDrawCommitted     = "Draw committed"
	LogMsgDrawRejected      = "Draw rejected by simulation"
	LogMsgEventPublishError = "Failed to publish draw event"
)

// Error message formats
const (
	ErrMsgGetUserFailed      = "failed to get user: %w"
	ErrMsgGetCountersFailed  = "failed to get pity counters: %w"
	ErrMsgSaveCountersFailed = "failed to save pity counters: %w"
	ErrMsgBeginTxFailed      = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed     = "failed to commit transaction: %w"
)
