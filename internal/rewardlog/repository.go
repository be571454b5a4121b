package rewardlog

import (
	"context"
	"time"
)

// Entry is one persisted audit row for a resolution event.
type Entry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Filter narrows audit queries.
type Filter struct {
	UserID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for reward audit storage
type Repository interface {
	// LogEvent stores one audit row
	LogEvent(ctx context.Context, eventType string, userID *string, payload, metadata map[string]interface{}) error

	// GetEntries retrieves audit rows matching the filter
	GetEntries(ctx context.Context, filter Filter) ([]Entry, error)

	// GetEntriesByUser retrieves the most recent rows for one user
	GetEntriesByUser(ctx context.Context, userID string, limit int) ([]Entry, error)

	// CleanupOldEntries removes rows older than the retention period
	CleanupOldEntries(ctx context.Context, retentionDays int) (int64, error)
}
