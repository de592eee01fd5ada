package layout

import (
	"math"

	"github.com/fernvale/mosaic/pkg/errors"
)

// penaltyBase sets how sharply the penalty grows outside the band.
const penaltyBase = 10

// Score returns the penalty for a row whose aggregate aspect ratio
// deviates from the target band. It is zero inside the band and grows
// exponentially with distance from the nearer bound, unbounded above.
//
// The penalty is intentionally unnormalized: it is an ordering key for
// ranking candidate continuations generated from the same cursor within
// one partition step, never an absolute quality metric. Scores from
// different steps are not comparable.
func Score(aggregate float64, band Band) (float64, error) {
	if aggregate <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig,
			"aggregate aspect must be positive, got %g", aggregate)
	}
	if err := errors.ValidateBand(band.Min, band.Max); err != nil {
		return 0, err
	}
	return score(aggregate, band), nil
}

// score is the unchecked penalty used internally once inputs have been
// validated. Aggregate must be positive.
func score(aggregate float64, band Band) float64 {
	switch {
	case aggregate > band.Max:
		return math.Pow(penaltyBase, aggregate/band.Max) - penaltyBase
	case aggregate < band.Min:
		return math.Pow(penaltyBase, band.Min/aggregate) - penaltyBase
	default:
		return 0
	}
}
