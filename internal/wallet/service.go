package wallet

import (
	"context"
	"fmt"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/logger"
	"github.com/lunefall/rewardengine/internal/repository"
)

// Repository defines the wallet reads the service needs outside a transaction.
type Repository interface {
	GetBalance(ctx context.Context, userID, currencyKey string) (int, error)
}

// Service handles currency grants. Debits are feasibility-checked against the
// current balance; credits always pass.
type Service interface {
	CanGrant(ctx context.Context, userID string, handler domain.RewardHandler) error
	Apply(ctx context.Context, tx repository.RewardTx, userID string, handler domain.RewardHandler) error
	GetBalance(ctx context.Context, userID, currencyKey string) (int, error)
}

type service struct {
	repo Repository
}

// NewService creates a new wallet service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CanGrant verifies a currency delta will not drive the balance negative.
func (s *service) CanGrant(ctx context.Context, userID string, handler domain.RewardHandler) error {
	if handler.Amount >= 0 {
		return nil
	}

	balance, err := s.repo.GetBalance(ctx, userID, handler.TypeKey)
	if err != nil {
		return fmt.Errorf(ErrMsgGetBalanceFailed, err)
	}

	if balance+handler.Amount < 0 {
		return fmt.Errorf("%w: %s balance %d, requested %d", domain.ErrInsufficientFunds, handler.TypeKey, balance, -handler.Amount)
	}
	return nil
}

// Apply adjusts the balance inside the caller's transaction.
func (s *service) Apply(ctx context.Context, tx repository.RewardTx, userID string, handler domain.RewardHandler) error {
	if handler.Amount == 0 {
		return nil
	}

	if err := tx.AdjustBalance(ctx, userID, handler.TypeKey, handler.Amount); err != nil {
		return fmt.Errorf(ErrMsgAdjustBalanceFailed, err)
	}

	log := logger.FromContext(ctx)
	log.Debug(LogMsgBalanceAdjusted, "userID", userID, "currency", handler.TypeKey, "delta", handler.Amount)
	return nil
}

func (s *service) GetBalance(ctx context.Context, userID, currencyKey string) (int, error) {
	return s.repo.GetBalance(ctx, userID, currencyKey)
}
