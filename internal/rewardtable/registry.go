package rewardtable

import (
	"fmt"

	"github.com/lunefall/rewardengine/internal/domain"
)

// Registry is the immutable in-memory view of the static reward data.
// Built once at startup; safe for concurrent reads.
type Registry struct {
	rows      map[string]*domain.RewardRow
	itemTypes map[string]*domain.ItemType
	campaigns map[string]*domain.CampaignConfig // keyed by group name
}

// BuildRegistry validates the loaded documents as a whole and indexes them.
// Beyond struct tags this enforces the semantic rules resolution depends on:
// unique keys, consistent total weights, resolvable composite references and
// the absence of reference cycles.
func BuildRegistry(tables *TablesConfig, itemTypes *ItemTypesConfig, campaigns *CampaignsConfig) (*Registry, error) {
	reg := &Registry{
		rows:      make(map[string]*domain.RewardRow, len(tables.Rows)),
		itemTypes: make(map[string]*domain.ItemType, len(itemTypes.Types)),
		campaigns: make(map[string]*domain.CampaignConfig, len(campaigns.Campaigns)),
	}

	for i := range itemTypes.Types {
		t := &itemTypes.Types[i]
		if _, exists := reg.itemTypes[t.Key]; exists {
			return nil, fmt.Errorf("%w: item type %q", ErrDuplicateKey, t.Key)
		}
		reg.itemTypes[t.Key] = t
	}

	for i := range tables.Rows {
		row := &tables.Rows[i]
		if _, exists := reg.rows[row.Key]; exists {
			return nil, fmt.Errorf("%w: reward row %q", ErrDuplicateKey, row.Key)
		}
		if err := checkWeights(row); err != nil {
			return nil, err
		}
		reg.rows[row.Key] = row
	}

	for i := range campaigns.Campaigns {
		c := &campaigns.Campaigns[i]
		if _, exists := reg.campaigns[c.GroupName]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGroup, c.GroupName)
		}
		reg.campaigns[c.GroupName] = c
	}

	if err := reg.checkReferences(); err != nil {
		return nil, err
	}
	return reg, nil
}

// checkWeights verifies the precomputed total weight, or fills it in when the
// document omits it.
func checkWeights(row *domain.RewardRow) error {
	sum := 0
	for _, c := range row.Candidates {
		sum += c.Weight
	}
	if row.TotalWeight == 0 {
		row.TotalWeight = sum
		return nil
	}
	if row.TotalWeight != sum {
		return fmt.Errorf("%w: row %q declares %d, candidates sum to %d",
			ErrWeightMismatch, row.Key, row.TotalWeight, sum)
	}
	return nil
}

// checkReferences walks every handler, verifying item keys resolve to a
// registered item type, composite references resolve to an existing row, and
// following references never loops back to a visited row. A key that only
// fails at grant time is a config error this catches at startup instead.
func (r *Registry) checkReferences() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(r.rows))

	var visit func(key string) error
	visit = func(key string) error {
		switch state[key] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: via row %q", ErrReferenceCycle, key)
		}
		state[key] = visiting

		row := r.rows[key]
		for _, h := range rowHandlers(row) {
			if h.Type == domain.RewardItem {
				if _, ok := r.itemTypes[h.TypeKey]; !ok {
					return fmt.Errorf("%w: row %q references item %q", ErrDanglingReference, key, h.TypeKey)
				}
				continue
			}
			if h.Type != domain.RewardTable && h.Type != domain.RewardGacha {
				continue
			}
			next, ok := r.rows[h.TypeKey]
			if !ok {
				return fmt.Errorf("%w: row %q references %q", ErrDanglingReference, key, h.TypeKey)
			}
			// Gacha references are resolved per draw, not inline, so they
			// cannot recurse; only composite rows participate in the cycle walk.
			if h.Type == domain.RewardTable {
				if err := visit(next.Key); err != nil {
					return err
				}
			}
		}

		state[key] = done
		return nil
	}

	for key := range r.rows {
		if err := visit(key); err != nil {
			return err
		}
	}
	return nil
}

func rowHandlers(row *domain.RewardRow) []domain.RewardHandler {
	handlers := make([]domain.RewardHandler, 0, len(row.Statics)+len(row.Candidates))
	handlers = append(handlers, row.Statics...)
	for _, c := range row.Candidates {
		handlers = append(handlers, c.Handler)
	}
	return handlers
}

// FindRewardRow returns the row for key, or nil when unknown.
func (r *Registry) FindRewardRow(key string) *domain.RewardRow {
	return r.rows[key]
}

// FindItemType returns the item type for key, or nil when unknown.
func (r *Registry) FindItemType(key string) *domain.ItemType {
	return r.itemTypes[key]
}

// FindCampaignForGroup returns the campaign config for a reward group, or nil.
func (r *Registry) FindCampaignForGroup(group string) *domain.CampaignConfig {
	return r.campaigns[group]
}
