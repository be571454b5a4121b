package wallet

// Log messages
const (
	LogMsgBalanceAdjusted = "Balance adjusted"
)

// Error message formats
const (
	ErrMsgGetBalanceFailed    = "failed to get balance: %w"
	ErrMsgAdjustBalanceFailed = "failed to adjust balance: %w"
)
