package render

import (
	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/gallery"
)

// Supported output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Formats lists all supported output formats.
var Formats = []string{FormatSVG, FormatHTML, FormatJSON}

// Option configures rendering across all sinks.
type Option func(*renderer)

type renderer struct {
	title   string
	images  bool
	shading bool
}

// WithTitle sets a document title for the artifact.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithImages references photo URLs in the output instead of drawing
// placeholder rectangles. Items without a URL still get placeholders.
func WithImages() Option { return func(r *renderer) { r.images = true } }

// WithCropShading overlays a hatch on items whose visible region was
// cropped, which makes out-of-band rows easy to spot in previews.
func WithCropShading() Option { return func(r *renderer) { r.shading = true } }

func newRenderer(opts ...Option) renderer {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// ValidateFormat checks that format names a supported sink.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (supported: svg, html, json)", format)
}

// Render dispatches to the sink for the given format.
func Render(l gallery.Layout, format string, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(l, opts...), nil
	case FormatHTML:
		return RenderHTML(l, opts...), nil
	case FormatJSON:
		return RenderJSON(l, opts...)
	default:
		return nil, ValidateFormat(format)
	}
}
