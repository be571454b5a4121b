package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunefall/rewardengine/internal/database/postgres"
	"github.com/lunefall/rewardengine/internal/repository"
	"github.com/lunefall/rewardengine/internal/rewardlog"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Reward    repository.Reward
	RewardLog rewardlog.Repository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Reward:    postgres.NewRewardRepository(dbPool),
		RewardLog: postgres.NewRewardLogRepository(dbPool),
	}
}
