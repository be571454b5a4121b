package roster

// Log messages
const (
	LogMsgCharacterUnlocked = "Character unlocked"
)

// Error message formats
const (
	ErrMsgHasCharacterFailed    = "failed to check character ownership: %w"
	ErrMsgInsertCharacterFailed = "failed to insert character: %w"
)
