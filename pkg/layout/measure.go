package layout

import (
	"math"

	"github.com/fernvale/mosaic/pkg/errors"
)

// ItemGeometry is the placed position of one item within its row.
type ItemGeometry struct {
	// Width is the item's display width in pixels.
	Width int

	// Left is the item's offset from the row's left edge in pixels.
	Left int
}

// RowGeometry is the exact pixel geometry of one measured row. The item
// widths plus the borders between them always sum to exactly the
// container width the row was measured against.
type RowGeometry struct {
	// Height is the shared display height of every item in the row.
	Height int

	// Items holds per-item width and left offset, in row order.
	Items []ItemGeometry
}

// Measure converts a row into exact pixel geometry for the given
// container width and border size.
//
// The row height comes from the aggregate aspect clamped to the band, so
// out-of-band rows keep a sane height and their items get cropped instead
// of distorted. Item widths use the unclamped aggregate for the nominal
// scale, rounding down and carrying the fraction rightward; the last item
// is then forced to close the row exactly, which is what guarantees the
// no-gaps, no-overlaps justification invariant regardless of accumulated
// rounding.
func Measure(row Row, containerWidth, borderSize int, band Band) (RowGeometry, error) {
	if err := errors.ValidateContainerWidth(containerWidth); err != nil {
		return RowGeometry{}, err
	}
	if err := errors.ValidateBand(band.Min, band.Max); err != nil {
		return RowGeometry{}, err
	}
	if borderSize < 0 {
		return RowGeometry{}, errors.New(errors.ErrCodeInvalidConfig,
			"border size must not be negative, got %d", borderSize)
	}
	n := len(row.Items)
	if n == 0 {
		return RowGeometry{}, errors.New(errors.ErrCodeInvalidConfig, "cannot measure an empty row")
	}
	if row.Aggregate <= 0 {
		return RowGeometry{}, errors.New(errors.ErrCodeInvalidConfig,
			"row aggregate aspect must be positive, got %g", row.Aggregate)
	}

	noBorderWidth := containerWidth - (n-1)*borderSize
	if noBorderWidth <= 0 {
		return RowGeometry{}, errors.New(errors.ErrCodeInvalidConfig,
			"borders leave no room for items: %d items with border %d in width %d",
			n, borderSize, containerWidth)
	}

	bounded := band.Clamp(row.Aggregate)
	geo := RowGeometry{
		Height: int(math.Ceil(float64(noBorderWidth) / bounded)),
		Items:  make([]ItemGeometry, n),
	}

	exactHeight := float64(noBorderWidth) / row.Aggregate
	left := 0
	carry := 0.0
	for i, item := range row.Items {
		var width int
		if i == n-1 {
			width = containerWidth - left
		} else {
			exact := exactHeight * item.AspectRatio
			width = int(math.Floor(exact))
			carry += exact - float64(width)
			if carry >= 1 {
				carry--
				width++
			}
		}
		geo.Items[i] = ItemGeometry{Width: width, Left: left}
		left += width + borderSize
	}
	return geo, nil
}
