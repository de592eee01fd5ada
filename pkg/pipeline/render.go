package pipeline

import (
	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/render"
)

// =============================================================================
// Artifact Rendering
// =============================================================================

// RenderFromLayout renders the layout in every requested format.
// This is the uncached entry point; the Runner wraps it with caching.
func RenderFromLayout(l gallery.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	renderOpts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := render.Render(l, format, renderOpts...)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
