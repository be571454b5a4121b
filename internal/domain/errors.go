package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgRewardRowNotFound  = "reward row not found"
	ErrMsgCampaignNotFound   = "campaign config not found"
	ErrMsgItemTypeNotFound   = "item type not found"
	ErrMsgEmptyCandidatePool = "empty candidate pool"
	ErrMsgInvalidTotalWeight = "invalid total weight"
	ErrMsgRewardRecursion    = "reward expansion too deep"
	ErrMsgEmptyRewardBatch   = "reward expansion produced no grants"

	// Capacity errors
	ErrMsgInventoryFull = "inventory is full"

	// Quantity errors
	ErrMsgInvalidQuantity      = "invalid quantity"
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Grant errors
	ErrMsgGrantRejected     = "grant rejected"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgCharacterOwned    = "character already owned"
	ErrMsgUnsupportedReward = "unsupported reward type"

	// User errors
	ErrMsgUserNotFound = "user not found"
	ErrMsgItemNotFound = "item not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Configuration errors: bad static data, never retried, no state mutation
	ErrRewardRowNotFound  = errors.New(ErrMsgRewardRowNotFound)
	ErrCampaignNotFound   = errors.New(ErrMsgCampaignNotFound)
	ErrItemTypeNotFound   = errors.New(ErrMsgItemTypeNotFound)
	ErrEmptyCandidatePool = errors.New(ErrMsgEmptyCandidatePool)
	ErrInvalidTotalWeight = errors.New(ErrMsgInvalidTotalWeight)
	ErrRewardRecursion    = errors.New(ErrMsgRewardRecursion)
	ErrEmptyRewardBatch   = errors.New(ErrMsgEmptyRewardBatch)

	// Capacity errors: user-facing rejection, batch-wide
	ErrInventoryFull = errors.New(ErrMsgInventoryFull)

	// Quantity errors: rejected locally as a no-op
	ErrInvalidQuantity      = errors.New(ErrMsgInvalidQuantity)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Grant errors
	ErrGrantRejected     = errors.New(ErrMsgGrantRejected)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrCharacterOwned    = errors.New(ErrMsgCharacterOwned)
	ErrUnsupportedReward = errors.New(ErrMsgUnsupportedReward)

	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
