package inventory

import (
	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/utils"
)

// rollOptions generates the sub-options for a newly created equipment record.
// Fixed options override rolled ones index-aligned; indexes past the fixed
// list are rolled from the weighted pool with a uniform value in
// [MinValue, MaxValue].
func rollOptions(spec *domain.EquipmentSpec, fixed []domain.ItemOption) []domain.ItemOption {
	if spec.OptionCount == 0 {
		return nil
	}

	options := make([]domain.ItemOption, 0, spec.OptionCount)
	for i := 0; i < spec.OptionCount; i++ {
		if i < len(fixed) {
			options = append(options, fixed[i])
			continue
		}
		def := pickOptionDef(spec.OptionPool)
		if def == nil {
			break
		}
		value := def.MinValue + utils.RandomFloat()*(def.MaxValue-def.MinValue)
		options = append(options, domain.ItemOption{OptionID: def.OptionID, Value: value})
	}
	return options
}

// pickOptionDef draws one definition from the pool by weight.
func pickOptionDef(pool []domain.SubOptionDef) *domain.SubOptionDef {
	total := 0
	for i := range pool {
		total += pool[i].Weight
	}
	if total <= 0 {
		return nil
	}

	draw := utils.RandomInt(1, total)
	cumulative := 0
	for i := range pool {
		cumulative += pool[i].Weight
		if cumulative >= draw {
			return &pool[i]
		}
	}
	return nil
}
