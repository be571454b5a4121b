package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunefall/rewardengine/internal/domain"
)

type fakeRepo struct {
	balances map[string]int
	err      error
}

func (f *fakeRepo) GetBalance(_ context.Context, _, currencyKey string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.balances[currencyKey], nil
}

type balanceAdjustment struct {
	userID      string
	currencyKey string
	delta       int
}

// fakeTx records mutations; the methods the wallet never touches are no-ops.
type fakeTx struct {
	adjustments []balanceAdjustment
	committed   bool
	rolledBack  bool
}

func (f *fakeTx) GetItemRecord(context.Context, string, string) (*domain.InventoryItemRecord, error) {
	return nil, nil
}
func (f *fakeTx) InsertItemRecord(context.Context, *domain.InventoryItemRecord) error { return nil }
func (f *fakeTx) UpdateItemAmount(context.Context, uuid.UUID, int) error              { return nil }
func (f *fakeTx) DeleteItemRecord(context.Context, uuid.UUID) error                   { return nil }
func (f *fakeTx) InsertItemOptions(context.Context, uuid.UUID, []domain.ItemOption) error {
	return nil
}
func (f *fakeTx) DeleteEquipmentBinding(context.Context, string, uuid.UUID) error { return nil }

func (f *fakeTx) AdjustBalance(_ context.Context, userID, currencyKey string, delta int) error {
	f.adjustments = append(f.adjustments, balanceAdjustment{userID: userID, currencyKey: currencyKey, delta: delta})
	return nil
}

func (f *fakeTx) InsertCharacter(context.Context, string, string) error { return nil }
func (f *fakeTx) SavePityCounters(context.Context, string, string, domain.PityCounters) error {
	return nil
}

func (f *fakeTx) Commit(context.Context) error   { f.committed = true; return nil }
func (f *fakeTx) Rollback(context.Context) error { f.rolledBack = true; return nil }
