package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/repository"
)

type rewardRepository struct {
	db *pgxpool.Pool
}

// NewRewardRepository creates a PostgreSQL reward repository
func NewRewardRepository(db *pgxpool.Pool) repository.Reward {
	return &rewardRepository{db: db}
}

// GetUser returns the user row, or nil when the user does not exist.
func (r *rewardRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, max_capacity, created_at
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Username, &user.MaxCapacity, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}

	return &user, nil
}

// GetSlotCount returns the number of occupied inventory slots. A stackable
// record occupies one slot regardless of its amount; non-stackable records
// occupy one slot per unit.
func (r *rewardRepository) GetSlotCount(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN is_stackable THEN 1 ELSE amount END), 0)
		FROM inventory_items
		WHERE user_id = $1 AND requires_slot
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetSlotCount, err)
	}
	return count, nil
}

func (r *rewardRepository) GetMaxCapacity(ctx context.Context, userID string) (int, error) {
	query := `SELECT max_capacity FROM users WHERE user_id = $1`

	var capacity int
	err := r.db.QueryRow(ctx, query, userID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %s", ErrMsgFailedToGetMaxCapacity, userID)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetMaxCapacity, err)
	}
	return capacity, nil
}

func (r *rewardRepository) GetOwnedAmount(ctx context.Context, userID, itemKey string) (int, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM inventory_items
		WHERE user_id = $1 AND item_key = $2
	`

	var amount int
	if err := r.db.QueryRow(ctx, query, userID, itemKey).Scan(&amount); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetOwnedAmount, err)
	}
	return amount, nil
}

// GetItemRecord returns the oldest record for the item key, or nil when the
// user owns none. Oldest-first keeps removals deterministic for
// non-stackable items with multiple records.
func (r *rewardRepository) GetItemRecord(ctx context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	return getItemRecord(ctx, r.db, userID, itemKey)
}

func (r *rewardRepository) ListItemRecords(ctx context.Context, userID string) ([]domain.InventoryItemRecord, error) {
	query := `
		SELECT item_uid, user_id, item_key, amount, is_stackable, requires_slot, created_at
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY created_at, item_key
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItemRecords, err)
	}
	defer rows.Close()

	var records []domain.InventoryItemRecord
	for rows.Next() {
		var rec domain.InventoryItemRecord
		err := rows.Scan(&rec.ItemUID, &rec.UserID, &rec.ItemKey, &rec.Amount, &rec.IsStackable, &rec.RequiresSlot, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItemRecords, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItemRecords, err)
	}

	for i := range records {
		options, err := getItemOptions(ctx, r.db, records[i].ItemUID)
		if err != nil {
			return nil, err
		}
		records[i].Options = options
	}

	return records, nil
}

func (r *rewardRepository) GetBalance(ctx context.Context, userID, currencyKey string) (int, error) {
	query := `
		SELECT COALESCE(
			(SELECT balance FROM wallets WHERE user_id = $1 AND currency_key = $2), 0)
	`

	var balance int
	if err := r.db.QueryRow(ctx, query, userID, currencyKey).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return balance, nil
}

func (r *rewardRepository) HasCharacter(ctx context.Context, userID, characterKey string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_characters WHERE user_id = $1 AND character_key = $2)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, characterKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}
	return exists, nil
}

// GetPityCounters returns the persisted counters, or zero counters when the
// pair has never drawn. Rows are created lazily on the first commit.
func (r *rewardRepository) GetPityCounters(ctx context.Context, userID, gachaKey string) (domain.PityCounters, error) {
	query := `
		SELECT normal_count, special_count
		FROM pity_counters
		WHERE user_id = $1 AND gacha_key = $2
	`

	var counters domain.PityCounters
	err := r.db.QueryRow(ctx, query, userID, gachaKey).Scan(&counters.Normal, &counters.Special)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PityCounters{}, nil
		}
		return domain.PityCounters{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetPityCounters, err)
	}
	return counters, nil
}

func (r *rewardRepository) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &rewardTx{tx: tx}, nil
}

// queryer is satisfied by both pgxpool.Pool and pgx.Tx so read helpers can
// run inside or outside a transaction.
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getItemRecord(ctx context.Context, q queryer, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	query := `
		SELECT item_uid, user_id, item_key, amount, is_stackable, requires_slot, created_at
		FROM inventory_items
		WHERE user_id = $1 AND item_key = $2
		ORDER BY created_at
		LIMIT 1
	`

	var rec domain.InventoryItemRecord
	err := q.QueryRow(ctx, query, userID, itemKey).Scan(
		&rec.ItemUID, &rec.UserID, &rec.ItemKey, &rec.Amount, &rec.IsStackable, &rec.RequiresSlot, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemRecord, err)
	}

	options, err := getItemOptions(ctx, q, rec.ItemUID)
	if err != nil {
		return nil, err
	}
	rec.Options = options

	return &rec, nil
}

func getItemOptions(ctx context.Context, q queryer, itemUID uuid.UUID) ([]domain.ItemOption, error) {
	query := `
		SELECT option_id, option_value
		FROM item_options
		WHERE item_uid = $1
		ORDER BY option_index
	`

	rows, err := q.Query(ctx, query, itemUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemOptions, err)
	}
	defer rows.Close()

	var options []domain.ItemOption
	for rows.Next() {
		var opt domain.ItemOption
		if err := rows.Scan(&opt.OptionID, &opt.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemOptions, err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemOptions, err)
	}

	return options, nil
}

type rewardTx struct {
	tx pgx.Tx
}

func (t *rewardTx) GetItemRecord(ctx context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	return getItemRecord(ctx, t.tx, userID, itemKey)
}

func (t *rewardTx) InsertItemRecord(ctx context.Context, record *domain.InventoryItemRecord) error {
	query := `
		INSERT INTO inventory_items (item_uid, user_id, item_key, amount, is_stackable, requires_slot)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := t.tx.Exec(ctx, query,
		record.ItemUID, record.UserID, record.ItemKey, record.Amount, record.IsStackable, record.RequiresSlot)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertItemRecord, err)
	}
	return nil
}

func (t *rewardTx) UpdateItemAmount(ctx context.Context, itemUID uuid.UUID, amount int) error {
	query := `UPDATE inventory_items SET amount = $2 WHERE item_uid = $1`

	result, err := t.tx.Exec(ctx, query, itemUID, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateItemAmount, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %s", ErrMsgFailedToUpdateItemAmount, itemUID)
	}
	return nil
}

func (t *rewardTx) DeleteItemRecord(ctx context.Context, itemUID uuid.UUID) error {
	query := `DELETE FROM inventory_items WHERE item_uid = $1`

	if _, err := t.tx.Exec(ctx, query, itemUID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItemRecord, err)
	}
	return nil
}

func (t *rewardTx) InsertItemOptions(ctx context.Context, itemUID uuid.UUID, options []domain.ItemOption) error {
	query := `
		INSERT INTO item_options (item_uid, option_index, option_id, option_value)
		VALUES ($1, $2, $3, $4)
	`

	for i, opt := range options {
		if _, err := t.tx.Exec(ctx, query, itemUID, i, opt.OptionID, opt.Value); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertItemOptions, err)
		}
	}
	return nil
}

func (t *rewardTx) DeleteEquipmentBinding(ctx context.Context, userID string, itemUID uuid.UUID) error {
	query := `DELETE FROM equipment_bindings WHERE user_id = $1 AND item_uid = $2`

	if _, err := t.tx.Exec(ctx, query, userID, itemUID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteBinding, err)
	}
	return nil
}

func (t *rewardTx) AdjustBalance(ctx context.Context, userID, currencyKey string, delta int) error {
	query := `
		INSERT INTO wallets (user_id, currency_key, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, currency_key)
		DO UPDATE SET balance = wallets.balance + $3
	`

	if _, err := t.tx.Exec(ctx, query, userID, currencyKey, delta); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAdjustBalance, err)
	}
	return nil
}

func (t *rewardTx) InsertCharacter(ctx context.Context, userID, characterKey string) error {
	query := `
		INSERT INTO user_characters (user_id, character_key)
		VALUES ($1, $2)
	`

	if _, err := t.tx.Exec(ctx, query, userID, characterKey); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertCharacter, err)
	}
	return nil
}

func (t *rewardTx) SavePityCounters(ctx context.Context, userID, gachaKey string, counters domain.PityCounters) error {
	query := `
		INSERT INTO pity_counters (user_id, gacha_key, normal_count, special_count, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, gacha_key)
		DO UPDATE SET normal_count = $3, special_count = $4, updated_at = NOW()
	`

	if _, err := t.tx.Exec(ctx, query, userID, gachaKey, counters.Normal, counters.Special); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePityCounters, err)
	}
	return nil
}

func (t *rewardTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *rewardTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
