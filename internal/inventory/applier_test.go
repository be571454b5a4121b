package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunefall/rewardengine/internal/domain"
)

var applierTypes = mapTypes{
	"potion": {Key: "potion", MaxStack: 99, RequiresSlot: true},
	"sword":  {Key: "sword", MaxStack: 1, RequiresSlot: true},
	"blade": {Key: "blade", MaxStack: 1, RequiresSlot: true, Equipment: &domain.EquipmentSpec{
		Slot:        "weapon",
		OptionCount: 2,
		OptionPool: []domain.SubOptionDef{
			{OptionID: "attack", Weight: 5, MinValue: 1, MaxValue: 10},
			{OptionID: "speed", Weight: 5, MinValue: 0.1, MaxValue: 0.5},
		},
	}},
}

func newApplierService(repo *fakeRepo) Service {
	return NewService(repo, applierTypes, nil, nil, nil)
}

func beginTestTx(t *testing.T, repo *fakeRepo) *fakeTx {
	t.Helper()
	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	return tx.(*fakeTx)
}

func TestApply_StackableClampsAtMaxStack(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)
	record := repo.addRecord("user-1", "potion", 95, true, true)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("potion", 10)})
	require.NoError(t, err)

	assert.Equal(t, 99, record.Amount)
	assert.Equal(t, 1, tx.amountUpdates)
	assert.Equal(t, 0, tx.inserts)
}

func TestApply_StackableCreatesNewStack(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("potion", 5)})
	require.NoError(t, err)

	record := repo.findRecord("user-1", "potion")
	require.NotNil(t, record)
	assert.Equal(t, 5, record.Amount)
	assert.Equal(t, 1, tx.inserts)
}

func TestApply_NonStackableCreatesRecordPerUnit(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("sword", 3)})
	require.NoError(t, err)

	assert.Equal(t, 3, tx.inserts)
	owned, _ := repo.GetOwnedAmount(context.Background(), "user-1", "sword")
	assert.Equal(t, 3, owned)
}

func TestApply_RemovalToZeroDeletesRecord(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)
	repo.addRecord("user-1", "potion", 3, true, true)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("potion", -3)})
	require.NoError(t, err)

	assert.Nil(t, repo.findRecord("user-1", "potion"))
	assert.Equal(t, 1, tx.deletes)
	assert.Equal(t, 0, tx.amountUpdates)
}

func TestApply_EquipmentDeletionCascadesBinding(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)
	repo.addRecord("user-1", "blade", 1, false, true)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("blade", -1)})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.deletes)
	assert.Equal(t, 1, tx.bindingDeletes)
}

func TestApply_RemovalExceedingStockRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)
	repo.addRecord("user-1", "potion", 2, true, true)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("potion", -5)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientQuantity))
}

func TestApply_EquipmentRollsConfiguredOptionCount(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)

	svc := newApplierService(repo)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{item("blade", 1)})
	require.NoError(t, err)

	record := repo.findRecord("user-1", "blade")
	require.NotNil(t, record)
	require.Len(t, record.Options, 2)
	for _, opt := range record.Options {
		assert.Contains(t, []string{"attack", "speed"}, opt.OptionID)
	}
	assert.Equal(t, 1, tx.optionInserts)
}

func TestApply_DelegatesNonItemTypes(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("user-1", 10)

	granter := &fakeGranter{}
	svc := NewService(repo, applierTypes, map[domain.RewardType]Granter{domain.RewardCurrency: granter}, nil, nil)
	tx := beginTestTx(t, repo)

	err := svc.Apply(context.Background(), tx, "user-1", []domain.RewardHandler{
		{Type: domain.RewardCurrency, TypeKey: "gold", Amount: 100},
	})
	require.NoError(t, err)
	require.Len(t, granter.applied, 1)
	assert.Equal(t, "gold", granter.applied[0].TypeKey)
}
