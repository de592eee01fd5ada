package layout

import (
	"github.com/fernvale/mosaic/pkg/errors"
)

// =============================================================================
// Defaults - Single Source of Truth
// =============================================================================

const (
	// DefaultBandMin is the lower bound of the target row-aspect band.
	DefaultBandMin = 1.8

	// DefaultBandMax is the upper bound of the target row-aspect band.
	DefaultBandMax = 3.6

	// DefaultMaxCombos caps how many candidate continuations one partition
	// step may produce. The cap is shared across the whole lookahead tree.
	DefaultMaxCombos = 24

	// DefaultMaxRows is the lookahead depth of the partition search.
	DefaultMaxRows = 3
)

// DefaultBand is the target band observed to produce pleasant rows:
// roughly two to four landscape photos per row.
var DefaultBand = Band{Min: DefaultBandMin, Max: DefaultBandMax}

// =============================================================================
// Core Types
// =============================================================================

// Item is one photo in the sequence to lay out. The engine only needs its
// aspect ratio; the ID is carried through so consumers can map geometry
// back to their own photo records.
type Item struct {
	ID          string
	AspectRatio float64
}

// Band is the target range for a row's aggregate aspect ratio. Rows whose
// aggregate falls inside the band score zero; outside it they pay an
// exponential penalty and their items are center-cropped on display.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether aggregate falls inside the band.
func (b Band) Contains(aggregate float64) bool {
	return aggregate >= b.Min && aggregate <= b.Max
}

// Clamp bounds aggregate to the band.
func (b Band) Clamp(aggregate float64) float64 {
	if aggregate < b.Min {
		return b.Min
	}
	if aggregate > b.Max {
		return b.Max
	}
	return aggregate
}

// Row is a contiguous run of items that share one display height.
// Rows are produced by Partition and are immutable afterwards.
type Row struct {
	// Start is the index of the row's first item in the original sequence.
	Start int

	// Items is the contiguous slice of laid-out items. It aliases the
	// caller's slice and must not be mutated.
	Items []Item

	// Aggregate is the sum of the items' aspect ratios. It equals the
	// row's total width divided by its shared height.
	Aggregate float64
}

// End returns the index one past the row's last item.
func (r Row) End() int { return r.Start + len(r.Items) }

// Config holds the engine's tuning knobs. The zero value selects the
// defaults above with the deterministic first-seen tie-break.
type Config struct {
	// Band is the target row-aspect band. Zero value means DefaultBand.
	Band Band

	// BorderSize is the fixed gap between adjacent items, in pixels.
	// Negative values are rejected; zero means no gap. The engine takes
	// the value literally; hosting layers pick their own default.
	BorderSize int

	// MaxCombos caps candidate continuations per partition step.
	MaxCombos int

	// MaxRows is the lookahead depth. More than 3 buys nothing in
	// practice and is clamped by the default.
	MaxRows int

	// Selector breaks ties among equally scored continuations.
	// Nil means first-seen wins, which keeps Partition deterministic.
	Selector Selector
}

// withDefaults fills unset fields from the package defaults.
func (c Config) withDefaults() Config {
	if c.Band == (Band{}) {
		c.Band = DefaultBand
	}
	if c.MaxCombos == 0 {
		c.MaxCombos = DefaultMaxCombos
	}
	if c.MaxRows == 0 {
		c.MaxRows = DefaultMaxRows
	}
	return c
}

// validate rejects configurations the engine cannot compute with.
// Callers get these errors before any partitioning starts.
func (c Config) validate() error {
	if err := errors.ValidateBand(c.Band.Min, c.Band.Max); err != nil {
		return err
	}
	if c.BorderSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "border size must not be negative, got %d", c.BorderSize)
	}
	if c.MaxCombos < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max combos must be at least 1, got %d", c.MaxCombos)
	}
	if c.MaxRows < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max rows must be at least 1, got %d", c.MaxRows)
	}
	return nil
}

// =============================================================================
// Full Pass
// =============================================================================

// PlacedRow pairs a partitioned row with its exact pixel geometry.
type PlacedRow struct {
	Row
	Geometry RowGeometry
}

// Result is a complete layout pass: every input item placed exactly once,
// in order, with exact-pixel geometry per row.
type Result struct {
	ContainerWidth int
	Rows           []PlacedRow
}

// Compute runs the full pass: partition the items into rows, then measure
// each row against the container width. Empty input yields an empty
// result, not an error. Identical inputs always produce identical output
// unless a randomized Selector is configured.
func Compute(items []Item, containerWidth int, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := errors.ValidateContainerWidth(containerWidth); err != nil {
		return Result{}, err
	}

	rows, err := Partition(items, cfg)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		ContainerWidth: containerWidth,
		Rows:           make([]PlacedRow, len(rows)),
	}
	for i, row := range rows {
		geo, err := Measure(row, containerWidth, cfg.BorderSize, cfg.Band)
		if err != nil {
			return Result{}, err
		}
		result.Rows[i] = PlacedRow{Row: row, Geometry: geo}
	}
	return result, nil
}
