package gallery

import (
	"encoding/json"
	"os"

	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/layout"
)

// =============================================================================
// Layout - Serialized Justified Layout
// =============================================================================

// Layout is the canonical serialization format for computed layouts.
// Used for API responses, storage, caching, and rendering.
//
// All geometry is in CSS pixels relative to the container's top-left
// corner. Crop regions are in the photo's native pixel space.
type Layout struct {
	GalleryHash    string `json:"gallery_hash,omitempty" bson:"gallery_hash,omitempty"`
	ContainerWidth int    `json:"container_width" bson:"container_width"`
	Height         int    `json:"height" bson:"height"`
	BorderSize     int    `json:"border_size,omitempty" bson:"border_size,omitempty"`

	// Partitioning options, recorded for reproducibility.
	BandMin   float64 `json:"band_min,omitempty" bson:"band_min,omitempty"`
	BandMax   float64 `json:"band_max,omitempty" bson:"band_max,omitempty"`
	Randomize bool    `json:"randomize,omitempty" bson:"randomize,omitempty"`
	Seed      uint64  `json:"seed,omitempty" bson:"seed,omitempty"`

	Rows []LayoutRow `json:"rows" bson:"rows"`
}

// LayoutRow is one justified row: a horizontal strip of uniform height.
type LayoutRow struct {
	Top    int          `json:"top" bson:"top"`
	Height int          `json:"height" bson:"height"`
	Items  []LayoutItem `json:"items" bson:"items"`
}

// LayoutItem places one photo inside its row.
type LayoutItem struct {
	ID    string `json:"id" bson:"id"`
	Width int    `json:"width" bson:"width"`
	Left  int    `json:"left" bson:"left"`

	// Carried from the source photo for renderers.
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	URL   string `json:"url,omitempty" bson:"url,omitempty"`

	// Visible region in native pixel space, present when the row's
	// aggregate fell outside the band and the photo must be cropped.
	Crop *Crop `json:"crop,omitempty" bson:"crop,omitempty"`
}

// Crop is a rectangle in the photo's native pixel space.
type Crop struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// =============================================================================
// Result → Layout Conversion
// =============================================================================

// FromResult converts an engine result into the serialization format,
// joining geometry back to the gallery's photos to compute crop regions
// and carry display metadata.
func FromResult(g Gallery, result layout.Result, cfg layout.Config) (Layout, error) {
	band := cfg.Band
	if band == (layout.Band{}) {
		band = layout.DefaultBand
	}

	out := Layout{
		GalleryHash:    g.Hash(),
		ContainerWidth: result.ContainerWidth,
		BorderSize:     cfg.BorderSize,
		BandMin:        band.Min,
		BandMax:        band.Max,
		Rows:           make([]LayoutRow, len(result.Rows)),
	}

	top := 0
	for i, placed := range result.Rows {
		row := LayoutRow{
			Top:    top,
			Height: placed.Geometry.Height,
			Items:  make([]LayoutItem, len(placed.Items)),
		}

		for j, item := range placed.Items {
			li := LayoutItem{
				ID:    item.ID,
				Width: placed.Geometry.Items[j].Width,
				Left:  placed.Geometry.Items[j].Left,
			}

			photo, ok := g.Photo(item.ID)
			if !ok {
				return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "row %d references unknown photo %q", i, item.ID)
			}
			li.Title = photo.Title
			li.URL = photo.URL

			rect, err := layout.Crop(placed.Aggregate, band, float64(photo.Width), float64(photo.Height))
			if err != nil {
				return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "crop photo %q", item.ID)
			}
			if rect.X != 0 || rect.Y != 0 || rect.W != float64(photo.Width) || rect.H != float64(photo.Height) {
				li.Crop = &Crop{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H}
			}

			row.Items[j] = li
		}

		out.Rows[i] = row
		top += placed.Geometry.Height + cfg.BorderSize
	}

	if len(out.Rows) > 0 {
		last := out.Rows[len(out.Rows)-1]
		out.Height = last.Top + last.Height
	}

	return out, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "unmarshal layout")
	}

	if l.ContainerWidth <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "layout must declare a positive container width")
	}
	for i, row := range l.Rows {
		if row.Height <= 0 {
			return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "row %d has non-positive height", i)
		}
		if len(row.Items) == 0 {
			return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "row %d has no items", i)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
