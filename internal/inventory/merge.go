package inventory

import (
	"fmt"

	"github.com/lunefall/rewardengine/internal/domain"
)

// TypeLookup resolves static item type configuration.
type TypeLookup interface {
	FindItemType(key string) *domain.ItemType
}

// MergeBatch collapses a flat grant batch so the simulator and applier each
// see at most one handler per stackable item key. Non-item grants keep their
// relative order at the front of the result. Stackable item grants are summed
// per key in first-seen order; keys whose amounts net to zero are dropped
// entirely. Non-stackable item grants follow untouched, one handler per
// original entry.
func MergeBatch(types TypeLookup, handlers []domain.RewardHandler) ([]domain.RewardHandler, error) {
	merged := make([]domain.RewardHandler, 0, len(handlers))

	stackTotals := make(map[string]*domain.RewardHandler)
	stackOrder := make([]string, 0)
	nonStackable := make([]domain.RewardHandler, 0)

	for _, h := range handlers {
		if h.Type != domain.RewardItem {
			merged = append(merged, h)
			continue
		}

		itemType := types.FindItemType(h.TypeKey)
		if itemType == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemTypeNotFound, h.TypeKey)
		}

		if !itemType.IsStackable() {
			nonStackable = append(nonStackable, h)
			continue
		}

		if existing, ok := stackTotals[h.TypeKey]; ok {
			existing.Amount += h.Amount
			continue
		}
		hCopy := h
		stackTotals[h.TypeKey] = &hCopy
		stackOrder = append(stackOrder, h.TypeKey)
	}

	for _, key := range stackOrder {
		h := stackTotals[key]
		if h.Amount == 0 {
			continue
		}
		merged = append(merged, *h)
	}

	return append(merged, nonStackable...), nil
}
