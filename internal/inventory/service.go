package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lunefall/rewardengine/internal/concurrency"
	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/event"
	"github.com/lunefall/rewardengine/internal/logger"
	"github.com/lunefall/rewardengine/internal/metrics"
	"github.com/lunefall/rewardengine/internal/repository"
)

// Granter handles feasibility and application for one reward type that lives
// outside the item store (currency, characters). Implementations must keep
// CanGrant read-only; Apply queues mutations on the caller's transaction.
type Granter interface {
	CanGrant(ctx context.Context, userID string, handler domain.RewardHandler) error
	Apply(ctx context.Context, tx repository.RewardTx, userID string, handler domain.RewardHandler) error
}

// ItemView is one row of a user-facing inventory listing.
type ItemView struct {
	ItemUID     string              `json:"item_uid"`
	ItemKey     string              `json:"item_key"`
	DisplayName string              `json:"display_name"`
	Amount      int                 `json:"amount"`
	Stackable   bool                `json:"stackable"`
	Options     []domain.ItemOption `json:"options,omitempty"`
}

// Service defines the inventory interface: the simulate-then-commit grant
// pipeline plus read access for presentation.
type Service interface {
	// Grant resolves a flat batch end to end: merge, simulate, apply in one
	// transaction. Nothing is written when any part of the batch is infeasible.
	Grant(ctx context.Context, userID string, handlers []domain.RewardHandler) error

	// AddItemWithOptions grants item units whose equipment sub-options are
	// partially predetermined. Fixed options override rolled ones index-aligned.
	AddItemWithOptions(ctx context.Context, userID, itemKey string, amount int, fixed []domain.ItemOption) error

	// Simulate predicts feasibility without writing; returns the merged batch.
	Simulate(ctx context.Context, userID string, handlers []domain.RewardHandler, staged []domain.RecordDelta, checkCapacity bool) ([]domain.RewardHandler, error)

	// Apply queues mutations for a merged batch on an open transaction.
	Apply(ctx context.Context, tx repository.RewardTx, userID string, batch []domain.RewardHandler) error

	ListItems(ctx context.Context, userID string) ([]ItemView, error)

	// InvalidateUser drops the user's cached view after an external commit.
	InvalidateUser(userID string)
}

type service struct {
	repo     repository.Reward
	types    TypeLookup
	granters map[domain.RewardType]Granter
	bus      event.Bus
	locks    *concurrency.LockManager
	cache    *viewCache
	caser    cases.Caser
}

// NewService creates a new inventory service. The lock manager must be the
// same instance other resolution entry points serialize on; a nil manager
// gets a private one.
func NewService(repo repository.Reward, types TypeLookup, granters map[domain.RewardType]Granter, bus event.Bus, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:     repo,
		types:    types,
		granters: granters,
		bus:      bus,
		locks:    locks,
		cache:    newViewCache(ViewCacheSize, ViewCacheTTL),
		caser:    cases.Title(language.English),
	}
}

func (s *service) Grant(ctx context.Context, userID string, handlers []domain.RewardHandler) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGrantCalled, "userID", userID, "grants", len(handlers))

	if len(handlers) == 0 {
		return domain.ErrEmptyRewardBatch
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	// One request per account at a time: two concurrent grants must not
	// validate against the same slot baseline.
	return s.locks.WithLock(userID, func() error {
		return s.grantLocked(ctx, userID, handlers)
	})
}

func (s *service) grantLocked(ctx context.Context, userID string, handlers []domain.RewardHandler) error {
	log := logger.FromContext(ctx)

	merged, err := s.Simulate(ctx, userID, handlers, nil, true)
	if err != nil {
		s.publishRejected(ctx, userID, handlers, err)
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := s.Apply(ctx, tx, userID, merged); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	s.cache.Invalidate(userID)
	s.publishGranted(ctx, userID, merged)
	log.Info(LogMsgGrantCommitted, "userID", userID, "grants", len(merged))
	return nil
}

func (s *service) AddItemWithOptions(ctx context.Context, userID, itemKey string, amount int, fixed []domain.ItemOption) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, amount)
	}

	handler := domain.RewardHandler{Type: domain.RewardItem, TypeKey: itemKey, Amount: amount, Source: domain.SourceNone}
	return s.locks.WithLock(userID, func() error {
		return s.addItemLocked(ctx, userID, handler, fixed)
	})
}

func (s *service) addItemLocked(ctx context.Context, userID string, handler domain.RewardHandler, fixed []domain.ItemOption) error {
	merged, err := s.Simulate(ctx, userID, []domain.RewardHandler{handler}, nil, true)
	if err != nil {
		s.publishRejected(ctx, userID, []domain.RewardHandler{handler}, err)
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	for _, h := range merged {
		if err := s.applyItem(ctx, tx, userID, h, fixed); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	s.cache.Invalidate(userID)
	s.publishGranted(ctx, userID, merged)
	return nil
}

func (s *service) ListItems(ctx context.Context, userID string) ([]ItemView, error) {
	if views, ok := s.cache.Get(userID); ok {
		return views, nil
	}

	records, err := s.repo.ListItemRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemRecordsFailed, err)
	}

	views := make([]ItemView, 0, len(records))
	for _, record := range records {
		views = append(views, ItemView{
			ItemUID:     record.ItemUID.String(),
			ItemKey:     record.ItemKey,
			DisplayName: s.displayName(record.ItemKey),
			Amount:      record.Amount,
			Stackable:   record.IsStackable,
			Options:     record.Options,
		})
	}

	s.cache.Set(userID, views)
	return views, nil
}

func (s *service) InvalidateUser(userID string) {
	s.cache.Invalidate(userID)
}

// displayName prefers the configured name and falls back to title-casing the key.
func (s *service) displayName(itemKey string) string {
	if itemType := s.types.FindItemType(itemKey); itemType != nil && itemType.DisplayName != "" {
		return itemType.DisplayName
	}
	return s.caser.String(strings.ReplaceAll(itemKey, "_", " "))
}

func (s *service) publishGranted(ctx context.Context, userID string, batch []domain.RewardHandler) {
	if s.bus == nil {
		return
	}

	rewards := make([]event.GrantedReward, 0, len(batch))
	for _, h := range batch {
		rewards = append(rewards, event.GrantedReward{Type: string(h.Type), TypeKey: h.TypeKey, Amount: h.Amount})
	}

	source := string(domain.SourceNone)
	if len(batch) > 0 {
		source = string(batch[0].Source)
	}

	if err := s.bus.Publish(ctx, event.NewRewardGrantedEvent(userID, source, rewards)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishError, "error", err)
	}
}

func (s *service) publishRejected(ctx context.Context, userID string, batch []domain.RewardHandler, cause error) {
	logger.FromContext(ctx).Info(LogMsgGrantRejected, "userID", userID, "grants", len(batch), "error", cause)

	if s.bus == nil {
		return
	}

	source := string(domain.SourceNone)
	if len(batch) > 0 {
		source = string(batch[0].Source)
	}

	if err := s.bus.Publish(ctx, event.NewRewardRejectedEvent(userID, source, rejectionReason(cause))); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishError, "error", err)
	}
}

// rejectionReason buckets a simulation failure for events and metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInventoryFull):
		return metrics.ReasonCapacityExceeded
	case errors.Is(err, domain.ErrItemTypeNotFound),
		errors.Is(err, domain.ErrRewardRowNotFound),
		errors.Is(err, domain.ErrInvalidTotalWeight),
		errors.Is(err, domain.ErrEmptyCandidatePool):
		return metrics.ReasonConfiguration
	default:
		return metrics.ReasonInfeasibleGrant
	}
}
