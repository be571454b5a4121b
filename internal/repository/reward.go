package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunefall/rewardengine/internal/domain"
)

// Reward defines the persistence interface the resolution engine reads from.
// All reads outside a transaction are used by the capacity simulator and must
// never be coupled to pending writes.
type Reward interface {
	// User reads
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetSlotCount(ctx context.Context, userID string) (int, error)
	GetMaxCapacity(ctx context.Context, userID string) (int, error)

	// Inventory reads
	GetOwnedAmount(ctx context.Context, userID, itemKey string) (int, error)
	GetItemRecord(ctx context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error)
	ListItemRecords(ctx context.Context, userID string) ([]domain.InventoryItemRecord, error)

	// Wallet / roster reads
	GetBalance(ctx context.Context, userID, currencyKey string) (int, error)
	HasCharacter(ctx context.Context, userID, characterKey string) (bool, error)

	// Pity reads
	GetPityCounters(ctx context.Context, userID, gachaKey string) (domain.PityCounters, error)

	BeginTx(ctx context.Context) (RewardTx, error)
}

// RewardTx is one atomic unit of grant mutations. Everything queued between
// BeginTx and Commit lands together or not at all; nothing here performs
// validation beyond basic row existence - the simulator has already approved
// the batch by the time a transaction is opened.
type RewardTx interface {
	// Inventory mutations
	GetItemRecord(ctx context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error)
	InsertItemRecord(ctx context.Context, record *domain.InventoryItemRecord) error
	UpdateItemAmount(ctx context.Context, itemUID uuid.UUID, amount int) error
	DeleteItemRecord(ctx context.Context, itemUID uuid.UUID) error
	InsertItemOptions(ctx context.Context, itemUID uuid.UUID, options []domain.ItemOption) error
	DeleteEquipmentBinding(ctx context.Context, userID string, itemUID uuid.UUID) error

	// Wallet / roster mutations
	AdjustBalance(ctx context.Context, userID, currencyKey string, delta int) error
	InsertCharacter(ctx context.Context, userID, characterKey string) error

	// Pity mutations
	SavePityCounters(ctx context.Context, userID, gachaKey string, counters domain.PityCounters) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
