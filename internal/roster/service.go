package roster

import (
	"context"
	"fmt"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/logger"
	"github.com/lunefall/rewardengine/internal/repository"
)

// Repository defines the roster reads the service needs outside a transaction.
type Repository interface {
	HasCharacter(ctx context.Context, userID, characterKey string) (bool, error)
}

// Service handles character unlock grants. A character can be owned at most
// once, so granting a duplicate fails the feasibility check for the whole
// batch rather than silently converting to shards.
type Service interface {
	CanGrant(ctx context.Context, userID string, handler domain.RewardHandler) error
	Apply(ctx context.Context, tx repository.RewardTx, userID string, handler domain.RewardHandler) error
}

type service struct {
	repo Repository
}

// NewService creates a new roster service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CanGrant(ctx context.Context, userID string, handler domain.RewardHandler) error {
	if handler.Amount < 0 {
		return fmt.Errorf("%w: character grants cannot be negative", domain.ErrInvalidQuantity)
	}

	owned, err := s.repo.HasCharacter(ctx, userID, handler.TypeKey)
	if err != nil {
		return fmt.Errorf(ErrMsgHasCharacterFailed, err)
	}
	if owned {
		return fmt.Errorf("%w: %s", domain.ErrCharacterOwned, handler.TypeKey)
	}
	return nil
}

func (s *service) Apply(ctx context.Context, tx repository.RewardTx, userID string, handler domain.RewardHandler) error {
	if handler.Amount == 0 {
		return nil
	}

	if err := tx.InsertCharacter(ctx, userID, handler.TypeKey); err != nil {
		return fmt.Errorf(ErrMsgInsertCharacterFailed, err)
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgCharacterUnlocked, "userID", userID, "character", handler.TypeKey)
	return nil
}
