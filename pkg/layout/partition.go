package layout

import (
	"math"
	"math/rand/v2"

	"github.com/fernvale/mosaic/pkg/errors"
)

// =============================================================================
// Tie-Break Selectors
// =============================================================================

// Selector breaks ties among candidate continuations that scored equally
// in one partition step. Select receives the number of tied candidates
// (always >= 1, in generation order) and must return an index in [0, n).
type Selector interface {
	Select(n int) int
}

// firstSelector keeps the first-seen candidate, which makes Partition
// fully deterministic. This is the default.
type firstSelector struct{}

func (firstSelector) Select(int) int { return 0 }

// RandomSelector picks uniformly among tied candidates using a seeded
// generator. Layouts stay valid either way; this only varies which of
// several equally good row breaks is taken, for visual variety.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector creates a selector seeded for reproducible variety:
// the same seed over the same input picks the same layouts.
func NewRandomSelector(seed uint64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Select returns a uniformly random index in [0, n).
func (s *RandomSelector) Select(n int) int {
	if n <= 1 {
		return 0
	}
	return s.rng.IntN(n)
}

// =============================================================================
// Partitioner
// =============================================================================

// Partition splits items into rows. At each step it generates bounded
// lookahead continuations from the current cursor, picks the one with the
// lowest total penalty, accepts only its first row, and advances the
// cursor past it. Every item lands in exactly one row, in original order.
//
// Empty input yields an empty result, not an error. Invalid configuration
// or a non-positive item aspect ratio is rejected before any work starts.
func Partition(items []Item, cfg Config) ([]Row, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.AspectRatio <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidItem,
				"item %d (%s): aspect ratio must be positive, got %g", i, item.ID, item.AspectRatio)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	selector := cfg.Selector
	if selector == nil {
		selector = firstSelector{}
	}

	var rows []Row
	for cursor := 0; cursor < len(items); {
		combos := generateCombos(items, cursor, cfg.Band, cfg.MaxRows, cfg.MaxCombos)
		best := pickBest(combos, selector)
		accepted := best.rows[0]
		rows = append(rows, accepted)
		cursor = accepted.End()
	}
	return rows, nil
}

// pickBest returns the lowest-scoring combo, delegating ties to the
// selector. Generation order is preserved so the default selector keeps
// the first-seen winner.
func pickBest(combos []combo, selector Selector) combo {
	bestScore := math.Inf(1)
	for _, c := range combos {
		if c.score < bestScore {
			bestScore = c.score
		}
	}

	tied := combos[:0:0]
	for _, c := range combos {
		if c.score == bestScore {
			tied = append(tied, c)
		}
	}
	return tied[selector.Select(len(tied))]
}
