package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunefall/rewardengine/internal/domain"
)

// pool: common 1..90, relic 91..99 (tier 2), crown 100 (tier 5)
func pityRow() *domain.RewardRow {
	return &domain.RewardRow{
		Key:       "banner",
		GroupName: "summer",
		Candidates: []domain.RewardCandidate{
			{Handler: domain.RewardHandler{Type: domain.RewardItem, TypeKey: "potion", Amount: 1, Source: domain.SourceNone}, Weight: 90, PickupGroup: 0},
			{Handler: domain.RewardHandler{Type: domain.RewardItem, TypeKey: "relic", Amount: 1, Source: domain.SourceNone}, Weight: 9, PickupGroup: 2},
			{Handler: domain.RewardHandler{Type: domain.RewardItem, TypeKey: "crown", Amount: 1, Source: domain.SourceNone}, Weight: 1, PickupGroup: 5},
		},
		TotalWeight: 100,
	}
}

func pityCampaign() *domain.CampaignConfig {
	return &domain.CampaignConfig{
		GroupName:          "summer",
		NormalPickupGroup:  2,
		SpecialPickupGroup: 5,
		SpecialTryCount:    50,
	}
}

func TestDrawOnce_WeightedAdvancesCounters(t *testing.T) {
	counters := domain.PityCounters{}
	candidate, mode, err := drawOnce(&seqRand{vals: []int{0}}, pityRow(), pityCampaign(), &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModeWeighted, mode)
	assert.Equal(t, "potion", candidate.Handler.TypeKey)
	assert.Equal(t, domain.PityCounters{Normal: 1, Special: 1}, counters)
}

func TestDrawOnce_NormalPityFiresAtWindow(t *testing.T) {
	counters := domain.PityCounters{Normal: 9, Special: 10}
	candidate, mode, err := drawOnce(&seqRand{vals: []int{0}}, pityRow(), pityCampaign(), &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModePityNormal, mode)
	assert.GreaterOrEqual(t, candidate.PickupGroup, 2)
	assert.Equal(t, 0, counters.Normal, "normal counter resets after the guarantee")
	assert.Equal(t, 11, counters.Special, "special counter keeps counting")
}

func TestDrawOnce_SpecialOverridesNormal(t *testing.T) {
	counters := domain.PityCounters{Normal: 9, Special: 49}
	candidate, mode, err := drawOnce(&seqRand{vals: []int{0}}, pityRow(), pityCampaign(), &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModePitySpecial, mode)
	assert.Equal(t, "crown", candidate.Handler.TypeKey)
	assert.Equal(t, domain.PityCounters{}, counters, "both counters reset")
}

func TestDrawOnce_NaturalSpecialTierResetsBoth(t *testing.T) {
	counters := domain.PityCounters{Normal: 4, Special: 20}
	candidate, mode, err := drawOnce(&seqRand{vals: []int{99}}, pityRow(), pityCampaign(), &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModeWeighted, mode)
	assert.Equal(t, "crown", candidate.Handler.TypeKey)
	assert.Equal(t, domain.PityCounters{}, counters)
}

func TestDrawOnce_NaturalNormalTierResetsNormalOnly(t *testing.T) {
	counters := domain.PityCounters{Normal: 4, Special: 20}
	candidate, mode, err := drawOnce(&seqRand{vals: []int{98}}, pityRow(), pityCampaign(), &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModeWeighted, mode)
	assert.Equal(t, "relic", candidate.Handler.TypeKey)
	assert.Equal(t, domain.PityCounters{Normal: 0, Special: 21}, counters)
}

func TestDrawOnce_NoCampaignLeavesCountersAlone(t *testing.T) {
	counters := domain.PityCounters{Normal: 3, Special: 7}
	_, mode, err := drawOnce(&seqRand{vals: []int{0}}, pityRow(), nil, &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModeWeighted, mode)
	assert.Equal(t, domain.PityCounters{Normal: 3, Special: 7}, counters)
}

func TestDrawOnce_DisabledGuaranteesNeverFire(t *testing.T) {
	campaign := &domain.CampaignConfig{GroupName: "summer"}
	counters := domain.PityCounters{Normal: 99, Special: 999}
	_, mode, err := drawOnce(&seqRand{vals: []int{0}}, pityRow(), campaign, &counters)

	require.NoError(t, err)
	assert.Equal(t, domain.DrawModeWeighted, mode)
	assert.Equal(t, domain.PityCounters{Normal: 100, Special: 1000}, counters)
}
