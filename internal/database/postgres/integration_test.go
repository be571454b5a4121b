package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lunefall/rewardengine/internal/database"
	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/repository"
	"github.com/lunefall/rewardengine/internal/rewardlog"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		testPool, terminate = setupTestDB(ctx)
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupTestDB(ctx context.Context) (*pgxpool.Pool, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupTestDB: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, func() {}
	}

	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		terminate()
		return nil, func() {}
	}

	pool, err := database.NewPool(connStr, 10, 1*time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to create pool: %v\n", err)
		terminate()
		return nil, func() {}
	}

	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to apply migrations: %v\n", err)
		pool.Close()
		terminate()
		return nil, func() {}
	}

	return pool, terminate
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

// insertTestUser creates a user row directly; the engine itself never creates
// users.
func insertTestUser(t *testing.T, userID string, maxCapacity int) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"INSERT INTO users (user_id, username, max_capacity) VALUES ($1, $2, $3)",
		userID, "user_"+userID[:8], maxCapacity)
	require.NoError(t, err)
}

func newTestUserID() string {
	return uuid.New().String()
}

func commitTx(t *testing.T, ctx context.Context, repo repository.Reward, mutate func(tx repository.RewardTx)) {
	t.Helper()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	mutate(tx)

	require.NoError(t, tx.Commit(ctx))
}

func TestRewardRepository_GetUser(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 50)

	user, err := repo.GetUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, 50, user.MaxCapacity)

	capacity, err := repo.GetMaxCapacity(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, capacity)
}

func TestRewardRepository_GetUser_NotFound(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	user, err := repo.GetUser(ctx, newTestUserID())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRewardRepository_ItemRecordLifecycle(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	record := &domain.InventoryItemRecord{
		ItemUID:      uuid.New(),
		UserID:       userID,
		ItemKey:      "healing_potion",
		Amount:       40,
		IsStackable:  true,
		RequiresSlot: true,
	}

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.InsertItemRecord(ctx, record))
	})

	got, err := repo.GetItemRecord(ctx, userID, "healing_potion")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ItemUID, got.ItemUID)
	assert.Equal(t, 40, got.Amount)
	assert.True(t, got.IsStackable)

	owned, err := repo.GetOwnedAmount(ctx, userID, "healing_potion")
	require.NoError(t, err)
	assert.Equal(t, 40, owned)

	// One stackable record occupies one slot regardless of amount.
	slots, err := repo.GetSlotCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, slots)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.UpdateItemAmount(ctx, record.ItemUID, 99))
	})

	got, err = repo.GetItemRecord(ctx, userID, "healing_potion")
	require.NoError(t, err)
	assert.Equal(t, 99, got.Amount)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.DeleteItemRecord(ctx, record.ItemUID))
	})

	got, err = repo.GetItemRecord(ctx, userID, "healing_potion")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRewardRepository_SlotCount_PerUnitRecords(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		for i := 0; i < 3; i++ {
			err := tx.InsertItemRecord(ctx, &domain.InventoryItemRecord{
				ItemUID:      uuid.New(),
				UserID:       userID,
				ItemKey:      "iron_sword",
				Amount:       1,
				IsStackable:  false,
				RequiresSlot: true,
			})
			require.NoError(t, err)
		}
		// Slotless items never count toward capacity.
		err := tx.InsertItemRecord(ctx, &domain.InventoryItemRecord{
			ItemUID:      uuid.New(),
			UserID:       userID,
			ItemKey:      "guild_emblem",
			Amount:       1,
			IsStackable:  false,
			RequiresSlot: false,
		})
		require.NoError(t, err)
	})

	slots, err := repo.GetSlotCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, slots)

	owned, err := repo.GetOwnedAmount(ctx, userID, "iron_sword")
	require.NoError(t, err)
	assert.Equal(t, 3, owned)
}

func TestRewardRepository_ItemOptions(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	itemUID := uuid.New()
	options := []domain.ItemOption{
		{OptionID: "attack_pct", Value: 7.5},
		{OptionID: "crit_rate", Value: 2.25},
	}

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		err := tx.InsertItemRecord(ctx, &domain.InventoryItemRecord{
			ItemUID:      itemUID,
			UserID:       userID,
			ItemKey:      "flame_blade",
			Amount:       1,
			IsStackable:  false,
			RequiresSlot: true,
		})
		require.NoError(t, err)
		require.NoError(t, tx.InsertItemOptions(ctx, itemUID, options))
	})

	got, err := repo.GetItemRecord(ctx, userID, "flame_blade")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Options, 2)
	assert.Equal(t, "attack_pct", got.Options[0].OptionID)
	assert.InDelta(t, 7.5, got.Options[0].Value, 0.0001)
	assert.Equal(t, "crit_rate", got.Options[1].OptionID)

	// Deleting the record cascades to its options.
	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.DeleteItemRecord(ctx, itemUID))
	})

	var count int
	err = testPool.QueryRow(ctx, "SELECT COUNT(*) FROM item_options WHERE item_uid = $1", itemUID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRewardRepository_EquipmentBinding(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	itemUID := uuid.New()
	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		err := tx.InsertItemRecord(ctx, &domain.InventoryItemRecord{
			ItemUID:      itemUID,
			UserID:       userID,
			ItemKey:      "flame_blade",
			Amount:       1,
			IsStackable:  false,
			RequiresSlot: true,
		})
		require.NoError(t, err)
	})

	_, err := testPool.Exec(ctx,
		"INSERT INTO equipment_bindings (user_id, slot, item_uid) VALUES ($1, $2, $3)",
		userID, "weapon", itemUID)
	require.NoError(t, err)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.DeleteEquipmentBinding(ctx, userID, itemUID))
	})

	var count int
	err = testPool.QueryRow(ctx, "SELECT COUNT(*) FROM equipment_bindings WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRewardRepository_Balance(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	balance, err := repo.GetBalance(ctx, userID, "gold")
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.AdjustBalance(ctx, userID, "gold", 250))
	})

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.AdjustBalance(ctx, userID, "gold", -100))
	})

	balance, err = repo.GetBalance(ctx, userID, "gold")
	require.NoError(t, err)
	assert.Equal(t, 150, balance)
}

func TestRewardRepository_Balance_CheckPreventsNegative(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	err = tx.AdjustBalance(ctx, userID, "gold", -10)
	assert.Error(t, err, "balance check constraint should reject negative balances")
}

func TestRewardRepository_Characters(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	has, err := repo.HasCharacter(ctx, userID, "mage_lyra")
	require.NoError(t, err)
	assert.False(t, has)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		require.NoError(t, tx.InsertCharacter(ctx, userID, "mage_lyra"))
	})

	has, err = repo.HasCharacter(ctx, userID, "mage_lyra")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRewardRepository_PityCounters(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	// Zero counters before any draw has been committed.
	counters, err := repo.GetPityCounters(ctx, userID, "standard_banner")
	require.NoError(t, err)
	assert.Equal(t, domain.PityCounters{}, counters)

	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		err := tx.SavePityCounters(ctx, userID, "standard_banner", domain.PityCounters{Normal: 3, Special: 17})
		require.NoError(t, err)
	})

	counters, err = repo.GetPityCounters(ctx, userID, "standard_banner")
	require.NoError(t, err)
	assert.Equal(t, domain.PityCounters{Normal: 3, Special: 17}, counters)

	// Upsert overwrites.
	commitTx(t, ctx, repo, func(tx repository.RewardTx) {
		err := tx.SavePityCounters(ctx, userID, "standard_banner", domain.PityCounters{Normal: 0, Special: 0})
		require.NoError(t, err)
	})

	counters, err = repo.GetPityCounters(ctx, userID, "standard_banner")
	require.NoError(t, err)
	assert.Equal(t, domain.PityCounters{}, counters)
}

func TestRewardRepository_RollbackDiscardsWrites(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardRepository(testPool)

	userID := newTestUserID()
	insertTestUser(t, userID, 100)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	err = tx.InsertItemRecord(ctx, &domain.InventoryItemRecord{
		ItemUID:      uuid.New(),
		UserID:       userID,
		ItemKey:      "healing_potion",
		Amount:       5,
		IsStackable:  true,
		RequiresSlot: true,
	})
	require.NoError(t, err)
	require.NoError(t, tx.AdjustBalance(ctx, userID, "gold", 100))
	require.NoError(t, tx.Rollback(ctx))

	record, err := repo.GetItemRecord(ctx, userID, "healing_potion")
	require.NoError(t, err)
	assert.Nil(t, record)

	balance, err := repo.GetBalance(ctx, userID, "gold")
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestRewardLogRepository_RoundTrip(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardLogRepository(testPool)

	userID := newTestUserID()
	payload := map[string]interface{}{"source": "gacha", "amount": float64(3)}
	metadata := map[string]interface{}{"gacha_key": "standard_banner"}

	require.NoError(t, repo.LogEvent(ctx, "reward.granted", &userID, payload, metadata))
	require.NoError(t, repo.LogEvent(ctx, "reward.rejected", &userID, map[string]interface{}{"reason": "capacity_exceeded"}, nil))
	require.NoError(t, repo.LogEvent(ctx, "reward.granted", nil, map[string]interface{}{"source": "admin"}, nil))

	entries, err := repo.GetEntriesByUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	grantType := "reward.granted"
	filtered, err := repo.GetEntries(ctx, rewardlog.Filter{UserID: &userID, EventType: &grantType})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, payload, filtered[0].Payload)
	assert.Equal(t, metadata, filtered[0].Metadata)
	require.NotNil(t, filtered[0].UserID)
	assert.Equal(t, userID, *filtered[0].UserID)
}

func TestRewardLogRepository_Cleanup(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewRewardLogRepository(testPool)

	userID := newTestUserID()
	require.NoError(t, repo.LogEvent(ctx, "reward.granted", &userID, map[string]interface{}{"k": "v"}, nil))

	// Recent rows survive cleanup.
	removed, err := repo.CleanupOldEntries(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	_, err = testPool.Exec(ctx,
		"UPDATE reward_log SET created_at = NOW() - INTERVAL '120 days' WHERE user_id = $1", userID)
	require.NoError(t, err)

	removed, err = repo.CleanupOldEntries(ctx, 90)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))
}
