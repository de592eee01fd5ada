package gallery

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/layout"
)

// =============================================================================
// Photo - Gallery Input Element
// =============================================================================

// Photo describes a single image by its native pixel dimensions.
// The engine never fetches or decodes image bytes: dimensions are the
// only geometry input, and URL is carried through for renderers.
type Photo struct {
	ID     string         `json:"id" bson:"id"`
	Width  int            `json:"width" bson:"width"`
	Height int            `json:"height" bson:"height"`
	Title  string         `json:"title,omitempty" bson:"title,omitempty"`
	URL    string         `json:"url,omitempty" bson:"url,omitempty"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// AspectRatio returns width over height.
func (p *Photo) AspectRatio() float64 {
	return float64(p.Width) / float64(p.Height)
}

// DisplayTitle returns the title if set, otherwise the ID.
func (p *Photo) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}

// Validate checks the photo's ID and dimensions.
func (p *Photo) Validate() error {
	if err := errors.ValidatePhotoID(p.ID); err != nil {
		return err
	}
	return errors.ValidateDimensions(p.Width, p.Height)
}

// =============================================================================
// Gallery - Ordered Photo Collection
// =============================================================================

// Gallery is an ordered photo collection. Order is significant: layout
// rows are contiguous runs of this sequence.
type Gallery struct {
	Title  string  `json:"title,omitempty" bson:"title,omitempty"`
	Photos []Photo `json:"photos" bson:"photos"`
}

// Validate checks every photo and rejects duplicate IDs.
func (g *Gallery) Validate() error {
	seen := make(map[string]bool, len(g.Photos))
	for i, p := range g.Photos {
		if err := p.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGallery, err, "photo %d", i)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidGallery, "duplicate photo ID %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Items converts the gallery to the engine's input form.
func (g *Gallery) Items() []layout.Item {
	items := make([]layout.Item, len(g.Photos))
	for i, p := range g.Photos {
		items[i] = layout.Item{ID: p.ID, AspectRatio: p.AspectRatio()}
	}
	return items
}

// Photo returns the photo with the given ID, or false if absent.
func (g *Gallery) Photo(id string) (Photo, bool) {
	for _, p := range g.Photos {
		if p.ID == id {
			return p, true
		}
	}
	return Photo{}, false
}

// Hash returns a stable hex digest of the gallery content. Two galleries
// with the same photos in the same order hash identically, which makes
// the digest usable as a cache and storage key.
func (g *Gallery) Hash() string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range g.Photos {
		// Encode per photo so the digest tracks order and content but
		// not incidental formatting.
		_ = enc.Encode(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// UnmarshalGallery deserializes JSON bytes to a Gallery and validates it.
func UnmarshalGallery(data []byte) (Gallery, error) {
	var g Gallery
	if err := json.Unmarshal(data, &g); err != nil {
		return Gallery{}, errors.Wrap(errors.ErrCodeInvalidGallery, err, "unmarshal gallery")
	}
	if err := g.Validate(); err != nil {
		return Gallery{}, err
	}
	return g, nil
}
