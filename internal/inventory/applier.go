package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/logger"
	"github.com/lunefall/rewardengine/internal/repository"
	"github.com/lunefall/rewardengine/internal/utils"
)

// Apply queues the mutations for a simulated batch on the caller's
// transaction. The batch must be the merged output of Simulate; nothing here
// re-checks capacity.
func (s *service) Apply(ctx context.Context, tx repository.RewardTx, userID string, batch []domain.RewardHandler) error {
	for _, h := range batch {
		switch h.Type {
		case domain.RewardNone:
			continue
		case domain.RewardItem:
			if err := s.applyItem(ctx, tx, userID, h, nil); err != nil {
				return err
			}
		default:
			granter, ok := s.granters[h.Type]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrUnsupportedReward, h.Type)
			}
			if err := granter.Apply(ctx, tx, userID, h); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) applyItem(ctx context.Context, tx repository.RewardTx, userID string, h domain.RewardHandler, fixed []domain.ItemOption) error {
	if h.Amount == 0 {
		return nil
	}

	itemType := s.types.FindItemType(h.TypeKey)
	if itemType == nil {
		return fmt.Errorf("%w: %s", domain.ErrItemTypeNotFound, h.TypeKey)
	}

	if h.Amount > 0 {
		return s.addItem(ctx, tx, userID, itemType, h.Amount, fixed)
	}
	return s.removeItem(ctx, tx, userID, itemType, -h.Amount)
}

// addItem grants amount units. Stackable types merge into the existing
// record when one exists; non-stackable types create one record per unit so
// each equipment instance rolls its own options.
func (s *service) addItem(ctx context.Context, tx repository.RewardTx, userID string, itemType *domain.ItemType, amount int, fixed []domain.ItemOption) error {
	if itemType.IsStackable() {
		record, err := tx.GetItemRecord(ctx, userID, itemType.Key)
		if err != nil {
			return fmt.Errorf(ErrMsgGetItemRecordFailed, err)
		}
		if record != nil {
			return s.updateAmount(ctx, tx, userID, record, amount, itemType)
		}
		return s.createRecord(ctx, tx, userID, itemType, amount, fixed)
	}

	for i := 0; i < amount; i++ {
		if err := s.createRecord(ctx, tx, userID, itemType, 1, fixed); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) createRecord(ctx context.Context, tx repository.RewardTx, userID string, itemType *domain.ItemType, amount int, fixed []domain.ItemOption) error {
	clamped := utils.Clamp(amount, 0, itemType.MaxStack)
	if clamped < amount {
		log := logger.FromContext(ctx)
		log.Warn(LogMsgStackOverflowCut, "userID", userID, "item", itemType.Key, "requested", amount, "kept", clamped)
	}

	record := &domain.InventoryItemRecord{
		ItemUID:      uuid.New(),
		UserID:       userID,
		ItemKey:      itemType.Key,
		Amount:       clamped,
		IsStackable:  itemType.IsStackable(),
		RequiresSlot: itemType.RequiresSlot,
		CreatedAt:    time.Now().UTC(),
	}
	if itemType.IsEquipment() {
		record.Options = rollOptions(itemType.Equipment, fixed)
	}

	if err := tx.InsertItemRecord(ctx, record); err != nil {
		return fmt.Errorf(ErrMsgInsertRecordFailed, err)
	}
	if len(record.Options) > 0 {
		if err := tx.InsertItemOptions(ctx, record.ItemUID, record.Options); err != nil {
			return fmt.Errorf(ErrMsgInsertOptionsFailed, err)
		}
	}
	return nil
}

// removeItem consumes amount units. Requests that exceed current stock are
// rejected outright rather than partially applied.
func (s *service) removeItem(ctx context.Context, tx repository.RewardTx, userID string, itemType *domain.ItemType, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative removal %d", domain.ErrInvalidQuantity, amount)
	}

	if itemType.IsStackable() {
		record, err := tx.GetItemRecord(ctx, userID, itemType.Key)
		if err != nil {
			return fmt.Errorf(ErrMsgGetItemRecordFailed, err)
		}
		if record == nil || record.Amount < amount {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemType.Key)
		}
		return s.updateAmount(ctx, tx, userID, record, -amount, itemType)
	}

	// Non-stackable records hold one unit each; consume them one at a time.
	for i := 0; i < amount; i++ {
		record, err := tx.GetItemRecord(ctx, userID, itemType.Key)
		if err != nil {
			return fmt.Errorf(ErrMsgGetItemRecordFailed, err)
		}
		if record == nil {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemType.Key)
		}
		if err := s.updateAmount(ctx, tx, userID, record, -record.Amount, itemType); err != nil {
			return err
		}
	}
	return nil
}

// updateAmount is the single choke point every amount change routes through.
// The new amount is clamped to [0, maxStack] and the delete-vs-update choice
// is made on the post-clamp value, not the requested delta.
func (s *service) updateAmount(ctx context.Context, tx repository.RewardTx, userID string, record *domain.InventoryItemRecord, delta int, itemType *domain.ItemType) error {
	newAmount := utils.Clamp(record.Amount+delta, 0, itemType.MaxStack)

	if record.Amount+delta > itemType.MaxStack {
		log := logger.FromContext(ctx)
		log.Warn(LogMsgStackOverflowCut, "userID", userID, "item", record.ItemKey, "requested", record.Amount+delta, "kept", newAmount)
	}

	if newAmount <= 0 {
		if err := tx.DeleteItemRecord(ctx, record.ItemUID); err != nil {
			return fmt.Errorf(ErrMsgDeleteRecordFailed, err)
		}
		if itemType.IsEquipment() {
			if err := tx.DeleteEquipmentBinding(ctx, userID, record.ItemUID); err != nil {
				return fmt.Errorf(ErrMsgDeleteBindingFailed, err)
			}
		}
		logger.FromContext(ctx).Debug(LogMsgRecordDeleted, "userID", userID, "item", record.ItemKey)
		record.Amount = 0
		return nil
	}

	if err := tx.UpdateItemAmount(ctx, record.ItemUID, newAmount); err != nil {
		return fmt.Errorf(ErrMsgUpdateAmountFailed, err)
	}
	record.Amount = newAmount
	return nil
}
