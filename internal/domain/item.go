package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubOptionDef is one rollable sub-option in an equipment pool.
type SubOptionDef struct {
	OptionID string  `json:"option_id" validate:"required"`
	Weight   int     `json:"weight" validate:"min=1"`
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
}

// EquipmentSpec describes how equipment of an item type is generated:
// OptionCount sub-options are rolled from the pool when a record is created.
type EquipmentSpec struct {
	Slot        string         `json:"slot" validate:"required"`
	OptionCount int            `json:"option_count" validate:"min=0"`
	OptionPool  []SubOptionDef `json:"option_pool,omitempty" validate:"dive"`
}

// ItemType is the static configuration the resolution engine reads for an
// item key. MaxStack of 1 means the item is non-stackable and every unit
// occupies its own inventory slot.
type ItemType struct {
	Key          string         `json:"key" validate:"required"`
	DisplayName  string         `json:"display_name"`
	MaxStack     int            `json:"max_stack" validate:"min=1"`
	RequiresSlot bool           `json:"requires_slot"`
	Equipment    *EquipmentSpec `json:"equipment,omitempty"`
}

// IsStackable reports whether multiple units merge into one slot.
func (t *ItemType) IsStackable() bool {
	return t.MaxStack > 1
}

// IsEquipment reports whether records of this type carry sub-options.
func (t *ItemType) IsEquipment() bool {
	return t.Equipment != nil
}

// ItemOption is one generated sub-option attached to an item record.
type ItemOption struct {
	OptionID string  `json:"option_id"`
	Value    float64 `json:"value"`
}

// InventoryItemRecord is one persisted inventory row. The inventory store
// owns these exclusively; resolution code only performs transient lookups
// during simulation and commit.
type InventoryItemRecord struct {
	ItemUID      uuid.UUID    `json:"item_uid"`
	UserID       string       `json:"user_id"`
	ItemKey      string       `json:"item_key"`
	Amount       int          `json:"amount"`
	IsStackable  bool         `json:"is_stackable"`
	RequiresSlot bool         `json:"requires_slot"`
	Options      []ItemOption `json:"options,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// RecordDelta is a staged change to an existing record from earlier
// processing in the same request: for non-stackable types Amount is the
// per-unit change, for stackable types the sign marks a staged creation
// (positive) or deletion (negative) rather than a quantity change.
type RecordDelta struct {
	ItemKey      string
	Amount       int
	IsStackable  bool
	RequiresSlot bool
}
