package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunefall/rewardengine/internal/rewardlog"
)

type rewardLogRepository struct {
	db *pgxpool.Pool
}

// NewRewardLogRepository creates a PostgreSQL reward audit repository
func NewRewardLogRepository(db *pgxpool.Pool) rewardlog.Repository {
	return &rewardLogRepository{db: db}
}

// LogEvent stores one audit row
func (r *rewardLogRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload, metadata map[string]interface{}) error {
	query := `
		INSERT INTO reward_log (event_type, user_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return err
		}
	}

	_, err = r.db.Exec(ctx, query, eventType, userID, payloadJSON, metadataJSON)
	return err
}

// GetEntries retrieves audit rows based on filter criteria
func (r *rewardLogRepository) GetEntries(ctx context.Context, filter rewardlog.Filter) ([]rewardlog.Entry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, event_type, user_id, payload, metadata, created_at
		FROM reward_log
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.UserID != nil {
		fmt.Fprintf(&queryBuilder, " AND user_id = $%d", argNum)
		args = append(args, *filter.UserID)
		argNum++
	}

	if filter.EventType != nil {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, *filter.EventType)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetEntriesByUser retrieves the most recent audit rows for one user
func (r *rewardLogRepository) GetEntriesByUser(ctx context.Context, userID string, limit int) ([]rewardlog.Entry, error) {
	query := `
		SELECT id, event_type, user_id, payload, metadata, created_at
		FROM reward_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// CleanupOldEntries removes audit rows older than the specified number of days
func (r *rewardLogRepository) CleanupOldEntries(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM reward_log
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`

	result, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func (r *rewardLogRepository) scanEntries(rows pgx.Rows) ([]rewardlog.Entry, error) {
	var entries []rewardlog.Entry

	for rows.Next() {
		var entry rewardlog.Entry
		var payloadJSON, metadataJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.EventType,
			&entry.UserID,
			&payloadJSON,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, err
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
