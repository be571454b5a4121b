package inventory

import (
	"context"
	"fmt"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/utils"
)

// Simulate predicts whether a grant batch can be applied without violating
// capacity or per-grant feasibility, without mutating any persisted state.
// It returns the merged batch that the applier must subsequently receive.
//
// staged carries record updates queued by earlier processing in the same
// request; they shift the baseline slot count before the batch is walked.
// The whole batch is rejected the instant the running slot total exceeds the
// account's capacity, so a rejection never leaves a partial result.
func (s *service) Simulate(ctx context.Context, userID string, handlers []domain.RewardHandler, staged []domain.RecordDelta, checkCapacity bool) ([]domain.RewardHandler, error) {
	merged, err := MergeBatch(s.types, handlers)
	if err != nil {
		return nil, err
	}

	var slots, maxCap int
	if checkCapacity {
		slots, err = s.repo.GetSlotCount(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetSlotCountFailed, err)
		}
		maxCap, err = s.repo.GetMaxCapacity(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetMaxCapacityFailed, err)
		}
		slots += stagedSlotDelta(staged)
	}

	for _, h := range merged {
		if err := s.checkGrant(ctx, userID, h); err != nil {
			return nil, err
		}

		// Only ordinary loot consumes slot budget here; pre-validated
		// sources were accounted for by their own flows.
		if !checkCapacity || h.Type != domain.RewardItem || h.Source != domain.SourceNone {
			continue
		}

		itemType := s.types.FindItemType(h.TypeKey)
		if !itemType.RequiresSlot {
			continue
		}

		owned, err := s.repo.GetOwnedAmount(ctx, userID, h.TypeKey)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetOwnedAmountFailed, err)
		}

		slots += slotDelta(itemType, owned, h.Amount)
		if slots > maxCap {
			return nil, fmt.Errorf("%w: need %d slots, capacity %d", domain.ErrInventoryFull, slots, maxCap)
		}
	}

	return merged, nil
}

// stagedSlotDelta folds already-staged record updates into the baseline.
// For non-stackable types each unit of amount change moves one slot; for
// stackable types a staged creation or deletion moves exactly one slot.
func stagedSlotDelta(staged []domain.RecordDelta) int {
	delta := 0
	for _, d := range staged {
		if !d.RequiresSlot {
			continue
		}
		if d.IsStackable {
			switch {
			case d.Amount > 0:
				delta++
			case d.Amount < 0:
				delta--
			}
			continue
		}
		delta += d.Amount
	}
	return delta
}

// slotDelta predicts how one merged grant changes the occupied slot count.
func slotDelta(itemType *domain.ItemType, owned, amount int) int {
	if !itemType.IsStackable() {
		if amount >= 0 {
			return amount
		}
		return -utils.MinInt(owned, -amount)
	}
	switch {
	case amount > 0 && owned == 0:
		return 1 // new stack
	case amount < 0 && owned+amount <= 0:
		return -1 // stack fully consumed
	}
	return 0
}

// checkGrant runs the per-grant feasibility check. Item stock is verified
// locally; every other reward type is delegated to its granter.
func (s *service) checkGrant(ctx context.Context, userID string, h domain.RewardHandler) error {
	switch h.Type {
	case domain.RewardNone:
		return nil
	case domain.RewardItem:
		if h.Amount >= 0 {
			return nil
		}
		owned, err := s.repo.GetOwnedAmount(ctx, userID, h.TypeKey)
		if err != nil {
			return fmt.Errorf(ErrMsgGetOwnedAmountFailed, err)
		}
		if owned < -h.Amount {
			return fmt.Errorf("%w: %s owned %d, requested %d", domain.ErrInsufficientQuantity, h.TypeKey, owned, -h.Amount)
		}
		return nil
	default:
		granter, ok := s.granters[h.Type]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedReward, h.Type)
		}
		return granter.CanGrant(ctx, userID, h)
	}
}
