package gacha

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/repository"
)

// seqRand replays a fixed sequence of draw values.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

type stubTables struct {
	rows      map[string]*domain.RewardRow
	campaigns map[string]*domain.CampaignConfig
	itemTypes map[string]*domain.ItemType
}

func (s *stubTables) FindRewardRow(key string) *domain.RewardRow { return s.rows[key] }
func (s *stubTables) FindCampaignForGroup(group string) *domain.CampaignConfig {
	return s.campaigns[group]
}
func (s *stubTables) FindItemType(key string) *domain.ItemType { return s.itemTypes[key] }

// fakeRepo is an in-memory repository shared by the gacha and inventory
// services under test, so draws exercise the real simulate-then-commit path.
type fakeRepo struct {
	users    map[string]*domain.User
	records  []*domain.InventoryItemRecord
	balances map[string]map[string]int
	counters map[string]domain.PityCounters
	txs      []*fakeTx
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[string]*domain.User),
		balances: make(map[string]map[string]int),
		counters: make(map[string]domain.PityCounters),
	}
}

func (f *fakeRepo) addUser(userID string, maxCapacity int) {
	f.users[userID] = &domain.User{ID: userID, Username: userID, MaxCapacity: maxCapacity}
}

func (f *fakeRepo) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return f.users[userID], nil
}

func (f *fakeRepo) GetSlotCount(_ context.Context, userID string) (int, error) {
	slots := 0
	for _, r := range f.records {
		if r.UserID != userID || !r.RequiresSlot {
			continue
		}
		if r.IsStackable {
			slots++
		} else {
			slots += r.Amount
		}
	}
	return slots, nil
}

func (f *fakeRepo) GetMaxCapacity(_ context.Context, userID string) (int, error) {
	if u, ok := f.users[userID]; ok {
		return u.MaxCapacity, nil
	}
	return domain.DefaultMaxCapacity, nil
}

func (f *fakeRepo) GetOwnedAmount(_ context.Context, userID, itemKey string) (int, error) {
	owned := 0
	for _, r := range f.records {
		if r.UserID == userID && r.ItemKey == itemKey {
			owned += r.Amount
		}
	}
	return owned, nil
}

func (f *fakeRepo) GetItemRecord(_ context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.ItemKey == itemKey {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListItemRecords(_ context.Context, userID string) ([]domain.InventoryItemRecord, error) {
	out := make([]domain.InventoryItemRecord, 0)
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBalance(_ context.Context, userID, currencyKey string) (int, error) {
	return f.balances[userID][currencyKey], nil
}

func (f *fakeRepo) HasCharacter(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) GetPityCounters(_ context.Context, userID, gachaKey string) (domain.PityCounters, error) {
	return f.counters[userID+":"+gachaKey], nil
}

func (f *fakeRepo) BeginTx(context.Context) (repository.RewardTx, error) {
	tx := &fakeTx{repo: f}
	f.txs = append(f.txs, tx)
	return tx, nil
}

type fakeTx struct {
	repo         *fakeRepo
	counterSaves int
	committed    bool
}

func (t *fakeTx) GetItemRecord(ctx context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	return t.repo.GetItemRecord(ctx, userID, itemKey)
}

func (t *fakeTx) InsertItemRecord(_ context.Context, record *domain.InventoryItemRecord) error {
	recordCopy := *record
	t.repo.records = append(t.repo.records, &recordCopy)
	return nil
}

func (t *fakeTx) UpdateItemAmount(_ context.Context, itemUID uuid.UUID, amount int) error {
	for _, r := range t.repo.records {
		if r.ItemUID == itemUID {
			r.Amount = amount
		}
	}
	return nil
}

func (t *fakeTx) DeleteItemRecord(_ context.Context, itemUID uuid.UUID) error {
	kept := t.repo.records[:0]
	for _, r := range t.repo.records {
		if r.ItemUID != itemUID {
			kept = append(kept, r)
		}
	}
	t.repo.records = kept
	return nil
}

func (t *fakeTx) InsertItemOptions(context.Context, uuid.UUID, []domain.ItemOption) error {
	return nil
}

func (t *fakeTx) DeleteEquipmentBinding(context.Context, string, uuid.UUID) error { return nil }

func (t *fakeTx) AdjustBalance(_ context.Context, userID, currencyKey string, delta int) error {
	if t.repo.balances[userID] == nil {
		t.repo.balances[userID] = make(map[string]int)
	}
	t.repo.balances[userID][currencyKey] += delta
	return nil
}

func (t *fakeTx) InsertCharacter(context.Context, string, string) error { return nil }

func (t *fakeTx) SavePityCounters(_ context.Context, userID, gachaKey string, counters domain.PityCounters) error {
	t.repo.counters[userID+":"+gachaKey] = counters
	t.counterSaves++
	return nil
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { return nil }
