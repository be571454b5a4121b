package handler

import (
	"context"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/inventory"
	"github.com/lunefall/rewardengine/internal/repository"
	"github.com/lunefall/rewardengine/internal/rewardlog"
)

type fakeGachaService struct {
	result     *domain.DrawResult
	counters   domain.PityCounters
	err        error
	lastUserID string
	lastKey    string
	lastCount  int
}

func (f *fakeGachaService) Draw(_ context.Context, userID, gachaKey string, count int) (*domain.DrawResult, error) {
	f.lastUserID = userID
	f.lastKey = gachaKey
	f.lastCount = count
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGachaService) GetCounters(_ context.Context, userID, gachaKey string) (domain.PityCounters, error) {
	f.lastUserID = userID
	f.lastKey = gachaKey
	return f.counters, f.err
}

type fakeInventoryService struct {
	items       []inventory.ItemView
	err         error
	grantedTo   string
	granted     []domain.RewardHandler
	addedKey    string
	addedAmount int
	addedFixed  []domain.ItemOption
}

func (f *fakeInventoryService) Grant(_ context.Context, userID string, handlers []domain.RewardHandler) error {
	f.grantedTo = userID
	f.granted = handlers
	return f.err
}

func (f *fakeInventoryService) AddItemWithOptions(_ context.Context, userID, itemKey string, amount int, fixed []domain.ItemOption) error {
	f.grantedTo = userID
	f.addedKey = itemKey
	f.addedAmount = amount
	f.addedFixed = fixed
	return f.err
}

func (f *fakeInventoryService) Simulate(_ context.Context, _ string, handlers []domain.RewardHandler, _ []domain.RecordDelta, _ bool) ([]domain.RewardHandler, error) {
	return handlers, f.err
}

func (f *fakeInventoryService) Apply(context.Context, repository.RewardTx, string, []domain.RewardHandler) error {
	return f.err
}

func (f *fakeInventoryService) ListItems(context.Context, string) ([]inventory.ItemView, error) {
	return f.items, f.err
}

func (f *fakeInventoryService) InvalidateUser(string) {}

type stubTables struct {
	rows map[string]*domain.RewardRow
}

func (s *stubTables) FindRewardRow(key string) *domain.RewardRow {
	return s.rows[key]
}

type fakeRewardLogRepo struct {
	entries   []rewardlog.Entry
	err       error
	lastLimit int
}

func (f *fakeRewardLogRepo) LogEvent(context.Context, string, *string, map[string]interface{}, map[string]interface{}) error {
	return f.err
}

func (f *fakeRewardLogRepo) GetEntries(context.Context, rewardlog.Filter) ([]rewardlog.Entry, error) {
	return f.entries, f.err
}

func (f *fakeRewardLogRepo) GetEntriesByUser(_ context.Context, _ string, limit int) ([]rewardlog.Entry, error) {
	f.lastLimit = limit
	return f.entries, f.err
}

func (f *fakeRewardLogRepo) CleanupOldEntries(context.Context, int) (int64, error) {
	return 0, f.err
}
