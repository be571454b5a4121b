package reward

import (
	"fmt"
	"math/rand"

	"github.com/lunefall/rewardengine/internal/domain"
)

// Rand is the randomness source for draws. Draws must be uniform and
// independent; they do not need to be cryptographically secure.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n) //nolint:gosec // Game logic randomness, not security critical
}

// DefaultRand returns the process-wide source, safe for concurrent use.
// Tests inject a seeded *rand.Rand instead.
func DefaultRand() Rand {
	return globalRand{}
}

// RollRandom draws one candidate from the row's weighted pool: a uniform
// integer in [1, TotalWeight], then a cumulative walk returning the first
// candidate whose running weight reaches the draw. Ties on the cumulative
// boundary always resolve to the earlier-listed candidate; callers and tests
// rely on that.
//
// An empty pool or non-positive total weight is a configuration error, not a
// retry condition.
func RollRandom(rnd Rand, row *domain.RewardRow) (domain.RewardCandidate, error) {
	if len(row.Candidates) == 0 {
		return domain.RewardCandidate{}, fmt.Errorf("%w: row %q", domain.ErrEmptyCandidatePool, row.Key)
	}
	if row.TotalWeight <= 0 {
		return domain.RewardCandidate{}, fmt.Errorf("%w: row %q has total weight %d", domain.ErrInvalidTotalWeight, row.Key, row.TotalWeight)
	}

	draw := rnd.Intn(row.TotalWeight) + 1

	cumulative := 0
	for _, c := range row.Candidates {
		cumulative += c.Weight
		if cumulative >= draw {
			return c, nil
		}
	}

	// Unreachable when TotalWeight matches the candidate sum, which the
	// registry enforces at load time.
	return domain.RewardCandidate{}, fmt.Errorf("%w: row %q candidate walk exhausted", domain.ErrInvalidTotalWeight, row.Key)
}

// PickupDraw restricts the pool to candidates of at least minGroup and draws
// uniformly among the survivors. Weights are ignored on purpose: a guarantee
// drawn by weight would almost always land on the cheapest qualifying tier.
func PickupDraw(rnd Rand, row *domain.RewardRow, minGroup int) (domain.RewardCandidate, error) {
	qualified := make([]domain.RewardCandidate, 0, len(row.Candidates))
	for _, c := range row.Candidates {
		if c.PickupGroup >= minGroup {
			qualified = append(qualified, c)
		}
	}

	if len(qualified) == 0 {
		return domain.RewardCandidate{}, fmt.Errorf("%w: row %q has no candidates with pickup group >= %d",
			domain.ErrEmptyCandidatePool, row.Key, minGroup)
	}

	return qualified[rnd.Intn(len(qualified))], nil
}
