package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/repository"
)

type mapTypes map[string]*domain.ItemType

func (m mapTypes) FindItemType(key string) *domain.ItemType { return m[key] }

// fakeRepo is an in-memory repository. Transactions mutate the shared state
// directly; tests assert on the final records and the recorded operations.
type fakeRepo struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	records    []*domain.InventoryItemRecord
	balances   map[string]map[string]int
	characters map[string]map[string]bool
	counters   map[string]domain.PityCounters

	beginErr error
	txs      []*fakeTx
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      make(map[string]*domain.User),
		balances:   make(map[string]map[string]int),
		characters: make(map[string]map[string]bool),
		counters:   make(map[string]domain.PityCounters),
	}
}

func (f *fakeRepo) addUser(userID string, maxCapacity int) {
	f.users[userID] = &domain.User{ID: userID, Username: userID, MaxCapacity: maxCapacity}
}

func (f *fakeRepo) addRecord(userID, itemKey string, amount int, stackable, requiresSlot bool) *domain.InventoryItemRecord {
	record := &domain.InventoryItemRecord{
		ItemUID:      uuid.New(),
		UserID:       userID,
		ItemKey:      itemKey,
		Amount:       amount,
		IsStackable:  stackable,
		RequiresSlot: requiresSlot,
	}
	f.records = append(f.records, record)
	return record
}

func (f *fakeRepo) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return f.users[userID], nil
}

func (f *fakeRepo) GetSlotCount(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	f.mu.Lock()
	defer f.mu.Unlock()
	owned := 0
	for _, r := range f.records {
		if r.UserID == userID && r.ItemKey == itemKey {
			owned += r.Amount
		}
	}
	return owned, nil
}

func (f *fakeRepo) findRecord(userID, itemKey string) *domain.InventoryItemRecord {
	for _, r := range f.records {
		if r.UserID == userID && r.ItemKey == itemKey {
			return r
		}
	}
	return nil
}

func (f *fakeRepo) GetItemRecord(_ context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findRecord(userID, itemKey), nil
}

func (f *fakeRepo) ListItemRecords(_ context.Context, userID string) ([]domain.InventoryItemRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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

func (f *fakeRepo) HasCharacter(_ context.Context, userID, characterKey string) (bool, error) {
	return f.characters[userID][characterKey], nil
}

func (f *fakeRepo) GetPityCounters(_ context.Context, userID, gachaKey string) (domain.PityCounters, error) {
	return f.counters[userID+":"+gachaKey], nil
}

func (f *fakeRepo) BeginTx(context.Context) (repository.RewardTx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{repo: f}
	f.txs = append(f.txs, tx)
	return tx, nil
}

type fakeTx struct {
	repo *fakeRepo

	inserts        int
	amountUpdates  int
	deletes        int
	optionInserts  int
	bindingDeletes int
	counterSaves   int

	committed  bool
	rolledBack bool
}

func (t *fakeTx) GetItemRecord(ctx context.Context, userID, itemKey string) (*domain.InventoryItemRecord, error) {
	return t.repo.GetItemRecord(ctx, userID, itemKey)
}

func (t *fakeTx) InsertItemRecord(_ context.Context, record *domain.InventoryItemRecord) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	recordCopy := *record
	t.repo.records = append(t.repo.records, &recordCopy)
	t.inserts++
	return nil
}

func (t *fakeTx) UpdateItemAmount(_ context.Context, itemUID uuid.UUID, amount int) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, r := range t.repo.records {
		if r.ItemUID == itemUID {
			r.Amount = amount
		}
	}
	t.amountUpdates++
	return nil
}

func (t *fakeTx) DeleteItemRecord(_ context.Context, itemUID uuid.UUID) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	kept := t.repo.records[:0]
	for _, r := range t.repo.records {
		if r.ItemUID != itemUID {
			kept = append(kept, r)
		}
	}
	t.repo.records = kept
	t.deletes++
	return nil
}

func (t *fakeTx) InsertItemOptions(_ context.Context, _ uuid.UUID, _ []domain.ItemOption) error {
	t.optionInserts++
	return nil
}

func (t *fakeTx) DeleteEquipmentBinding(_ context.Context, _ string, _ uuid.UUID) error {
	t.bindingDeletes++
	return nil
}

func (t *fakeTx) AdjustBalance(_ context.Context, userID, currencyKey string, delta int) error {
	if t.repo.balances[userID] == nil {
		t.repo.balances[userID] = make(map[string]int)
	}
	t.repo.balances[userID][currencyKey] += delta
	return nil
}

func (t *fakeTx) InsertCharacter(_ context.Context, userID, characterKey string) error {
	if t.repo.characters[userID] == nil {
		t.repo.characters[userID] = make(map[string]bool)
	}
	t.repo.characters[userID][characterKey] = true
	return nil
}

func (t *fakeTx) SavePityCounters(_ context.Context, userID, gachaKey string, counters domain.PityCounters) error {
	t.repo.counters[userID+":"+gachaKey] = counters
	t.counterSaves++
	return nil
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

// fakeGranter is a Granter double for non-item reward types.
type fakeGranter struct {
	canErr  error
	applied []domain.RewardHandler
}

func (g *fakeGranter) CanGrant(_ context.Context, _ string, _ domain.RewardHandler) error {
	return g.canErr
}

func (g *fakeGranter) Apply(_ context.Context, _ repository.RewardTx, _ string, handler domain.RewardHandler) error {
	g.applied = append(g.applied, handler)
	return nil
}
