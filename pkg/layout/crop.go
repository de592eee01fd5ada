package layout

import (
	"github.com/fernvale/mosaic/pkg/errors"
)

// CropRect is a crop rectangle in an image's native source-pixel space.
// It always lies within the image bounds.
type CropRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Bias factors for the single-image cover crop. A centered crop offsets
// by half the trimmed excess; the vertical cover crop offsets by a fifth,
// keeping the upper portion of the photo where subjects usually sit.
const (
	cropCenterBias = 0.5
	cropTopBias    = 0.2
)

// Crop computes the source-pixel crop rectangle for an item in a row
// whose aggregate aspect falls outside the band.
//
// Rows over the band max display too wide for their height: items are
// cropped horizontally, centered. Rows under the band min display too
// tall: items are cropped vertically, centered. Inside the band the full
// image is used. The crop's implied aspect ratio equals the aggregate
// clamped to the band, matching the height Measure gives the row.
func Crop(aggregate float64, band Band, nativeWidth, nativeHeight float64) (CropRect, error) {
	if aggregate <= 0 {
		return CropRect{}, errors.New(errors.ErrCodeInvalidConfig,
			"aggregate aspect must be positive, got %g", aggregate)
	}
	if err := errors.ValidateBand(band.Min, band.Max); err != nil {
		return CropRect{}, err
	}
	if nativeWidth <= 0 || nativeHeight <= 0 {
		return CropRect{}, errors.New(errors.ErrCodeInvalidItem,
			"native dimensions must be positive, got %gx%g", nativeWidth, nativeHeight)
	}

	switch {
	case aggregate > band.Max:
		pct := band.Max / aggregate
		w := nativeWidth * pct
		return CropRect{X: (nativeWidth - w) * cropCenterBias, Y: 0, W: w, H: nativeHeight}, nil
	case aggregate < band.Min:
		pct := aggregate / band.Min
		h := nativeHeight * pct
		return CropRect{X: 0, Y: (nativeHeight - h) * cropCenterBias, W: nativeWidth, H: h}, nil
	default:
		return CropRect{X: 0, Y: 0, W: nativeWidth, H: nativeHeight}, nil
	}
}

// CoverCrop computes the crop for a single image displayed on its own at
// an arbitrary container aspect ratio, as used for cover photos and
// thumbnails outside the row engine.
//
// The image is cropped along whichever axis it is longer than the
// container. A horizontal crop is centered; a vertical crop is biased
// toward the upper third of the photo rather than centered.
func CoverCrop(nativeWidth, nativeHeight, containerAspect float64) (CropRect, error) {
	if nativeWidth <= 0 || nativeHeight <= 0 {
		return CropRect{}, errors.New(errors.ErrCodeInvalidItem,
			"native dimensions must be positive, got %gx%g", nativeWidth, nativeHeight)
	}
	if containerAspect <= 0 {
		return CropRect{}, errors.New(errors.ErrCodeInvalidConfig,
			"container aspect must be positive, got %g", containerAspect)
	}

	imageAspect := nativeWidth / nativeHeight
	switch {
	case imageAspect > containerAspect:
		// Relatively wider than the container: trim the sides evenly.
		w := nativeHeight * containerAspect
		return CropRect{X: (nativeWidth - w) * cropCenterBias, Y: 0, W: w, H: nativeHeight}, nil
	case imageAspect < containerAspect:
		// Relatively taller: trim top and bottom, keeping the top-heavy
		// share of the photo.
		h := nativeWidth / containerAspect
		return CropRect{X: 0, Y: (nativeHeight - h) * cropTopBias, W: nativeWidth, H: h}, nil
	default:
		return CropRect{X: 0, Y: 0, W: nativeWidth, H: nativeHeight}, nil
	}
}
