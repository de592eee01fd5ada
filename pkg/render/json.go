package render

import (
	"encoding/json"

	"github.com/fernvale/mosaic/pkg/gallery"
)

type jsonOutput struct {
	Generator string `json:"generator"`
	Title     string `json:"title,omitempty"`
	gallery.Layout
}

// RenderJSON exports the layout as a pretty-printed JSON document.
// This is the primary data interchange format, enabling:
//
//   - Integration with external gallery frontends
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// The document embeds the full layout (geometry, crops, partitioning
// options) plus a generator marker and optional title.
//
// RenderJSON returns an error only if JSON marshaling fails (should not
// happen with well-formed layouts). It does not modify l and is safe to
// call concurrently.
func RenderJSON(l gallery.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	out := jsonOutput{
		Generator: "mosaic",
		Title:     r.title,
		Layout:    l,
	}
	return json.MarshalIndent(out, "", "  ")
}
