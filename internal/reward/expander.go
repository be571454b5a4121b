package reward

import (
	"fmt"

	"github.com/lunefall/rewardengine/internal/domain"
)

// TableLookup resolves reward row references during expansion.
type TableLookup interface {
	FindRewardRow(key string) *domain.RewardRow
}

// Expander flattens reward rows into atomic grants. Composite handlers
// (RewardTable type) are replaced in place by the expansion of the row they
// reference, repeated Amount times. Expansion depth is bounded so a
// misconfigured self-referential table fails fast instead of recursing
// forever.
type Expander struct {
	tables   TableLookup
	rnd      Rand
	maxDepth int
}

// NewExpander creates an Expander. maxDepth bounds nested composite rows.
func NewExpander(tables TableLookup, rnd Rand, maxDepth int) *Expander {
	return &Expander{tables: tables, rnd: rnd, maxDepth: maxDepth}
}

// Flatten resolves a row into a flat, ordered list of atomic handlers:
// every static grant, then the outcome of exactly one weighted draw when the
// row has a candidate pool. Fails when the flattened list comes out empty.
func (e *Expander) Flatten(row *domain.RewardRow) ([]domain.RewardHandler, error) {
	out := make([]domain.RewardHandler, 0, len(row.Statics)+1)
	if err := e.expandRow(row, 0, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: row %q", domain.ErrEmptyRewardBatch, row.Key)
	}
	return out, nil
}

// FlattenHandler resolves a single drawn handler: composites expand through
// their referenced row, everything else passes through untouched.
func (e *Expander) FlattenHandler(h domain.RewardHandler) ([]domain.RewardHandler, error) {
	out := make([]domain.RewardHandler, 0, 1)
	if err := e.appendHandler(h, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Expander) expandRow(row *domain.RewardRow, depth int, out *[]domain.RewardHandler) error {
	if depth > e.maxDepth {
		return fmt.Errorf("%w: row %q at depth %d", domain.ErrRewardRecursion, row.Key, depth)
	}

	for _, h := range row.Statics {
		if err := e.appendHandler(h, depth, out); err != nil {
			return err
		}
	}

	if len(row.Candidates) > 0 {
		drawn, err := RollRandom(e.rnd, row)
		if err != nil {
			return err
		}
		if err := e.appendHandler(drawn.Handler, depth, out); err != nil {
			return err
		}
	}

	return nil
}

func (e *Expander) appendHandler(h domain.RewardHandler, depth int, out *[]domain.RewardHandler) error {
	if !h.IsComposite() {
		*out = append(*out, h)
		return nil
	}

	referenced := e.tables.FindRewardRow(h.TypeKey)
	if referenced == nil {
		return fmt.Errorf("%w: %q", domain.ErrRewardRowNotFound, h.TypeKey)
	}

	// Amount acts as a repeat count for composite handlers.
	for i := 0; i < h.Amount; i++ {
		if err := e.expandRow(referenced, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}
