package gacha

import (
	"context"
	"fmt"

	"github.com/lunefall/rewardengine/internal/concurrency"
	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/event"
	"github.com/lunefall/rewardengine/internal/inventory"
	"github.com/lunefall/rewardengine/internal/logger"
	"github.com/lunefall/rewardengine/internal/repository"
	"github.com/lunefall/rewardengine/internal/reward"
)

// TableLookup resolves the static configuration a draw needs.
type TableLookup interface {
	FindRewardRow(key string) *domain.RewardRow
	FindCampaignForGroup(group string) *domain.CampaignConfig
}

// Service resolves gacha draws: pity-controlled candidate selection,
// composite expansion, capacity simulation, then one atomic commit of the
// whole batch together with the advanced pity counters.
type Service interface {
	Draw(ctx context.Context, userID, gachaKey string, count int) (*domain.DrawResult, error)
	GetCounters(ctx context.Context, userID, gachaKey string) (domain.PityCounters, error)
}

type service struct {
	repo      repository.Reward
	tables    TableLookup
	inventory inventory.Service
	expander  *reward.Expander
	rnd       reward.Rand
	locks     *concurrency.LockManager
	bus       event.Bus
}

// NewService creates a new gacha service
func NewService(repo repository.Reward, tables TableLookup, inv inventory.Service, expander *reward.Expander, rnd reward.Rand, locks *concurrency.LockManager, bus event.Bus) Service {
	return &service{
		repo:      repo,
		tables:    tables,
		inventory: inv,
		expander:  expander,
		rnd:       rnd,
		locks:     locks,
		bus:       bus,
	}
}

func (s *service) Draw(ctx context.Context, userID, gachaKey string, count int) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDrawCalled, "userID", userID, "gachaKey", gachaKey, "count", count)

	if count < 1 || count > MaxDrawCount {
		return nil, fmt.Errorf("%w: draw count %d", domain.ErrInvalidQuantity, count)
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	// One request per account at a time: the simulation result must stay
	// valid until its transaction commits.
	var result *domain.DrawResult
	err = s.locks.WithLock(userID, func() error {
		var lockedErr error
		result, lockedErr = s.resolveDraw(ctx, userID, gachaKey, count)
		return lockedErr
	})
	return result, err
}

func (s *service) resolveDraw(ctx context.Context, userID, gachaKey string, count int) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)

	row := s.tables.FindRewardRow(gachaKey)
	if row == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRewardRowNotFound, gachaKey)
	}
	campaign := s.tables.FindCampaignForGroup(row.GroupName)

	counters, err := s.repo.GetPityCounters(ctx, userID, gachaKey)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}

	batch := make([]domain.RewardHandler, 0, count)
	modes := make([]domain.DrawMode, 0, count)
	for i := 0; i < count; i++ {
		drawn, mode, err := s.singleDraw(row, campaign, &counters)
		if err != nil {
			return nil, err
		}
		batch = append(batch, drawn...)
		modes = append(modes, mode)
	}

	merged, err := s.inventory.Simulate(ctx, userID, batch, nil, true)
	if err != nil {
		log.Info(LogMsgDrawRejected, "userID", userID, "gachaKey", gachaKey, "error", err)
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := s.inventory.Apply(ctx, tx, userID, merged); err != nil {
		return nil, err
	}
	// Counters advanced in memory across the whole loop land exactly once,
	// atomically with the grants they paid for.
	if campaign != nil {
		if err := tx.SavePityCounters(ctx, userID, gachaKey, counters); err != nil {
			return nil, fmt.Errorf(ErrMsgSaveCountersFailed, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	s.inventory.InvalidateUser(userID)
	s.publishDraw(ctx, userID, gachaKey, count, batch, modes, counters)
	log.Info(LogMsgDrawCommitted, "userID", userID, "gachaKey", gachaKey, "rewards", len(batch))

	return &domain.DrawResult{
		GachaKey: gachaKey,
		Rewards:  batch,
		Modes:    modes,
		Counters: counters,
	}, nil
}

// singleDraw resolves one draw to its flat grants: the row's static grants
// plus the pity-selected candidate, both recursively expanded.
func (s *service) singleDraw(row *domain.RewardRow, campaign *domain.CampaignConfig, counters *domain.PityCounters) ([]domain.RewardHandler, domain.DrawMode, error) {
	out := make([]domain.RewardHandler, 0, len(row.Statics)+1)
	for _, static := range row.Statics {
		expanded, err := s.expander.FlattenHandler(static)
		if err != nil {
			return nil, domain.DrawModeWeighted, err
		}
		out = append(out, expanded...)
	}

	if len(row.Candidates) == 0 {
		if len(out) == 0 {
			return nil, domain.DrawModeWeighted, fmt.Errorf("%w: %s", domain.ErrEmptyRewardBatch, row.Key)
		}
		return out, domain.DrawModeWeighted, nil
	}

	candidate, mode, err := drawOnce(s.rnd, row, campaign, counters)
	if err != nil {
		return nil, mode, err
	}

	expanded, err := s.expander.FlattenHandler(candidate.Handler)
	if err != nil {
		return nil, mode, err
	}
	return append(out, expanded...), mode, nil
}

func (s *service) GetCounters(ctx context.Context, userID, gachaKey string) (domain.PityCounters, error) {
	counters, err := s.repo.GetPityCounters(ctx, userID, gachaKey)
	if err != nil {
		return domain.PityCounters{}, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	return counters, nil
}

func (s *service) publishDraw(ctx context.Context, userID, gachaKey string, count int, batch []domain.RewardHandler, modes []domain.DrawMode, counters domain.PityCounters) {
	if s.bus == nil {
		return
	}
	log := logger.FromContext(ctx)

	rewards := make([]event.GrantedReward, 0, len(batch))
	for _, h := range batch {
		rewards = append(rewards, event.GrantedReward{Type: string(h.Type), TypeKey: h.TypeKey, Amount: h.Amount})
	}
	if err := s.bus.Publish(ctx, event.NewRewardGrantedEvent(userID, GrantSource, rewards)); err != nil {
		log.Warn(LogMsgEventPublishError, "error", err)
	}

	modeNames := make([]string, 0, len(modes))
	for _, m := range modes {
		modeNames = append(modeNames, string(m))
	}
	if err := s.bus.Publish(ctx, event.NewGachaDrawCompletedEvent(userID, gachaKey, count, modeNames, counters.Normal, counters.Special)); err != nil {
		log.Warn(LogMsgEventPublishError, "error", err)
	}
}
