package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/lunefall/rewardengine/internal/config"
	"github.com/lunefall/rewardengine/internal/rewardtable"
)

// LoadRegistry reads and validates the static reward data from the configured
// JSON documents. The registry is immutable after this point; changing tables
// requires a restart.
func LoadRegistry(cfg *config.Config) (*rewardtable.Registry, error) {
	loader := rewardtable.NewLoader()

	registry, err := loader.Load(cfg.RewardTablesPath, cfg.ItemTypesPath, cfg.CampaignsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadRegistry, err)
	}

	slog.Info(LogMsgRegistryLoaded,
		"tables", cfg.RewardTablesPath,
		"item_types", cfg.ItemTypesPath,
		"campaigns", cfg.CampaignsPath)

	return registry, nil
}
