package inventory

import "time"

// View cache configuration
const (
	ViewCacheSize = 1024
	ViewCacheTTL  = 30 * time.Second
	ViewCacheName = "inventory_view"
)

// Log messages
const (
	LogMsgGrantCalled       = "Grant called"
	LogMsgGrantCommitted    = "Grant committed"
	LogMsgGrantRejected     = "Grant rejected by simulation"
	LogMsgStackOverflowCut  = "Stack overflow discarded"
	LogMsgRecordDeleted     = "Item record deleted"
	LogMsgEventPublishError = "Failed to publish grant event"
)

// Error message formats
const (
	ErrMsgGetSlotCountFailed    = "failed to get slot count: %w"
	ErrMsgGetMaxCapacityFailed  = "failed to get max capacity: %w"
	ErrMsgGetOwnedAmountFailed  = "failed to get owned amount: %w"
	ErrMsgGetItemRecordFailed   = "failed to get item record: %w"
	ErrMsgListItemRecordsFailed = "failed to list item records: %w"
	ErrMsgBeginTxFailed         = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed        = "failed to commit transaction: %w"
	ErrMsgInsertRecordFailed    = "failed to insert item record: %w"
	ErrMsgUpdateAmountFailed    = "failed to update item amount: %w"
	ErrMsgDeleteRecordFailed    = "failed to delete item record: %w"
	ErrMsgInsertOptionsFailed   = "failed to insert item options: %w"
	ErrMsgDeleteBindingFailed   = "failed to delete equipment binding: %w"
)
