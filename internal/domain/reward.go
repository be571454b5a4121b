package domain

// RewardType identifies what a RewardHandler grants
type RewardType string

const (
	RewardNone      RewardType = "NONE"
	RewardItem      RewardType = "ITEM"
	RewardCurrency  RewardType = "CURRENCY"
	RewardCharacter RewardType = "CHARACTER"
	RewardTable     RewardType = "REWARD_TABLE" // composite: TypeKey references another reward row
	RewardGacha     RewardType = "GACHA"        // draw request: TypeKey references a gacha reward row
)

// AcquireSource records which flow produced a grant.
// SourceNone is ordinary loot and subject to capacity checks; the other
// sources are pre-validated by their own flows and skip slot accounting.
type AcquireSource string

const (
	SourceNone         AcquireSource = "NONE"
	SourceExchange     AcquireSource = "EXCHANGE"
	SourceMail         AcquireSource = "MAIL"
	SourceCompensation AcquireSource = "COMPENSATION"
)

// RewardHandler is a single abstract grant. Immutable value type.
// Amount may be negative to represent consumption (e.g. an exchange cost).
type RewardHandler struct {
	Type    RewardType    `json:"type"`
	TypeKey string        `json:"type_key"`
	Amount  int           `json:"amount"`
	Source  AcquireSource `json:"source,omitempty"`
}

// IsComposite reports whether the handler must be expanded through another
// reward row before it can be granted.
func (h RewardHandler) IsComposite() bool {
	return h.Type == RewardTable
}

// RewardCandidate is one weighted entry in a reward row's random pool.
// PickupGroup is the ordinal tier used for guarantee eligibility; 0 means
// the candidate never satisfies a guarantee.
type RewardCandidate struct {
	Handler     RewardHandler `json:"reward" validate:"required"`
	Weight      int           `json:"weight" validate:"min=1"`
	PickupGroup int           `json:"pickup_group,omitempty" validate:"min=0"`
}

// RewardRow is one static reward-table row: a list of grants that are always
// given plus an optional weighted random pool from which exactly one
// candidate is drawn per expansion.
type RewardRow struct {
	Key         string            `json:"key" validate:"required"`
	GroupName   string            `json:"group,omitempty"`
	Statics     []RewardHandler   `json:"statics,omitempty"`
	Candidates  []RewardCandidate `json:"candidates,omitempty" validate:"dive"`
	TotalWeight int               `json:"total_weight,omitempty"`
}

// CampaignConfig holds the pity configuration for one reward group.
// NormalPickupGroup is guaranteed at least once every NormalPityWindow draws,
// SpecialPickupGroup at least once every SpecialTryCount draws. A group value
// of 0 disables the corresponding guarantee.
type CampaignConfig struct {
	GroupName          string `json:"group" validate:"required"`
	NormalPickupGroup  int    `json:"normal_pickup_group" validate:"min=0"`
	SpecialPickupGroup int    `json:"special_pickup_group" validate:"min=0"`
	SpecialTryCount    int    `json:"special_try_count" validate:"min=0"`
}

// DrawMode records how a single draw outcome was decided.
type DrawMode string

const (
	DrawModeWeighted    DrawMode = "weighted"
	DrawModePityNormal  DrawMode = "pity_normal"
	DrawModePitySpecial DrawMode = "pity_special"
)

// DrawResult is the outcome of one resolution batch: the flat, ordered grants
// that were committed plus the counter state persisted with them.
type DrawResult struct {
	GachaKey string          `json:"gacha_key"`
	Rewards  []RewardHandler `json:"rewards"`
	Modes    []DrawMode      `json:"modes"`
	Counters PityCounters    `json:"counters"`
}
