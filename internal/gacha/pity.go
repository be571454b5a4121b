package gacha

import (
	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/reward"
)

// drawOnce resolves a single draw against the row under the group's pity
// policy, mutating counters in place. Both counters advance before the
// outcome is decided; the guarantees are then evaluated in strict priority
// order. A natural draw that already meets a guarantee tier consumes the
// counter exactly as a forced guarantee would, so luck never stacks with
// pity into a double grant.
func drawOnce(rnd reward.Rand, row *domain.RewardRow, campaign *domain.CampaignConfig, counters *domain.PityCounters) (domain.RewardCandidate, domain.DrawMode, error) {
	if campaign == nil {
		candidate, err := reward.RollRandom(rnd, row)
		return candidate, domain.DrawModeWeighted, err
	}

	counters.Normal++
	counters.Special++

	if campaign.SpecialPickupGroup > 0 && counters.Special >= campaign.SpecialTryCount {
		candidate, err := reward.PickupDraw(rnd, row, campaign.SpecialPickupGroup)
		if err != nil {
			return domain.RewardCandidate{}, domain.DrawModePitySpecial, err
		}
		counters.Normal = 0
		counters.Special = 0
		return candidate, domain.DrawModePitySpecial, nil
	}

	if campaign.NormalPickupGroup > 0 && counters.Normal >= domain.NormalPityWindow {
		candidate, err := reward.PickupDraw(rnd, row, campaign.NormalPickupGroup)
		if err != nil {
			return domain.RewardCandidate{}, domain.DrawModePityNormal, err
		}
		counters.Normal = 0
		return candidate, domain.DrawModePityNormal, nil
	}

	candidate, err := reward.RollRandom(rnd, row)
	if err != nil {
		return domain.RewardCandidate{}, domain.DrawModeWeighted, err
	}

	switch {
	case campaign.SpecialPickupGroup > 0 && candidate.PickupGroup >= campaign.SpecialPickupGroup:
		counters.Normal = 0
		counters.Special = 0
	case campaign.NormalPickupGroup > 0 && candidate.PickupGroup >= campaign.NormalPickupGroup:
		counters.Normal = 0
	}
	return candidate, domain.DrawModeWeighted, nil
}
