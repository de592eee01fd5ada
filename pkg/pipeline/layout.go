package pipeline

import (
	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the serialized layout for a gallery.
// This is the uncached entry point; the Runner wraps it with caching.
//
// The layout records the partitioning options (band, randomize, seed)
// so a stored layout can be reproduced or audited later.
func GenerateLayout(g gallery.Gallery, opts Options) (gallery.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return gallery.Layout{}, err
	}
	if err := g.Validate(); err != nil {
		return gallery.Layout{}, err
	}

	cfg := opts.LayoutConfig()
	result, err := layout.Compute(g.Items(), opts.Width, cfg)
	if err != nil {
		return gallery.Layout{}, err
	}

	l, err := gallery.FromResult(g, result, cfg)
	if err != nil {
		return gallery.Layout{}, err
	}

	l.Randomize = opts.Randomize
	if opts.Randomize {
		l.Seed = opts.Seed
	}
	return l, nil
}
