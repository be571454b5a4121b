package domain

// NormalPityWindow is the draw count that triggers the normal guarantee.
// The special window comes from CampaignConfig.SpecialTryCount.
const NormalPityWindow = 10

// PityCounters is the persisted pity state for one (user, gacha key) pair.
// Both counters increment once per draw before the outcome is decided, and
// reset when a guarantee fires or a natural draw meets the guarantee tier.
// Created implicitly on first draw; zero values are valid state.
type PityCounters struct {
	Normal  int `json:"normal"`
	Special int `json:"special"`
}
