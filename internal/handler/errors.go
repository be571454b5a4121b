package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Path parameter error messages
	ErrMsgMissingPathParam = "Missing %s path parameter"

	// Grant operation error messages
	ErrMsgGrantFailed   = "Failed to grant rewards"
	ErrMsgAddItemFailed = "Failed to add item"

	// Gacha operation error messages
	ErrMsgDrawFailed        = "Failed to perform draw"
	ErrMsgGetCountersFailed = "Failed to retrieve pity counters"

	// Inventory error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"

	// Audit error messages
	ErrMsgGetRewardLogFailed = "Failed to retrieve reward log"
	ErrMsgInvalidLimit       = "Invalid limit parameter"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgRewardsGrantedSuccess = "Rewards granted successfully"
	MsgItemAddedSuccess      = "Item added successfully"
)
