package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Reads
const (
	ErrMsgFailedToGetUser        = "failed to get user"
	ErrMsgFailedToGetSlotCount   = "failed to get slot count"
	ErrMsgFailedToGetMaxCapacity = "failed to get max capacity"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetOwnedAmount    = "failed to get owned amount"
	ErrMsgFailedToGetItemRecord     = "failed to get item record"
	ErrMsgFailedToListItemRecords   = "failed to list item records"
	ErrMsgFailedToGetItemOptions    = "failed to get item options"
	ErrMsgFailedToInsertItemRecord  = "failed to insert item record"
	ErrMsgFailedToUpdateItemAmount  = "failed to update item amount"
	ErrMsgFailedToDeleteItemRecord  = "failed to delete item record"
	ErrMsgFailedToInsertItemOptions = "failed to insert item options"
	ErrMsgFailedToDeleteBinding     = "failed to delete equipment binding"
)

// Error Messages - Wallet / Roster Operations
const (
	ErrMsgFailedToGetBalance      = "failed to get balance"
	ErrMsgFailedToAdjustBalance   = "failed to adjust balance"
	ErrMsgFailedToGetCharacter    = "failed to check character ownership"
	ErrMsgFailedToInsertCharacter = "failed to insert character"
)

// Error Messages - Pity Operations
const (
	ErrMsgFailedToGetPityCounters  = "failed to get pity counters"
	ErrMsgFailedToSavePityCounters = "failed to save pity counters"
)
