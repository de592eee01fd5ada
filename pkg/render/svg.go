package render

import (
	"bytes"
	"fmt"
	"hash/fnv"

	"github.com/fernvale/mosaic/pkg/gallery"
)

// Placeholder fills for items without an image URL. Muted tones so
// cropped-region shading stays visible on top.
var placeholderPalette = []string{
	"#8da0cb", "#66c2a5", "#fc8d62", "#e78ac3", "#a6d854", "#ffd92f", "#b3b3b3",
}

const cropHatchDefs = `  <defs>
    <pattern id="crop-hatch" width="8" height="8" patternUnits="userSpaceOnUse" patternTransform="rotate(45)">
      <rect width="8" height="8" fill="none"/>
      <line x1="0" y1="0" x2="0" y2="8" stroke="#000" stroke-width="2" stroke-opacity="0.25"/>
    </pattern>
  </defs>
`

// RenderSVG renders the layout as an SVG document. Each item becomes a
// rectangle at its exact row geometry; with [WithImages], items carrying
// a URL embed the image with cover semantics instead.
func RenderSVG(l gallery.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.ContainerWidth, l.Height, l.ContainerWidth, l.Height)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.shading {
		buf.WriteString(cropHatchDefs)
	}

	for _, row := range l.Rows {
		for _, item := range row.Items {
			renderSVGItem(&buf, &r, row, item)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGItem(buf *bytes.Buffer, r *renderer, row gallery.LayoutRow, item gallery.LayoutItem) {
	fmt.Fprintf(buf, `  <g id="item-%s">`+"\n", escapeXML(item.ID))

	if r.images && item.URL != "" {
		fmt.Fprintf(buf, `    <image href="%s" x="%d" y="%d" width="%d" height="%d" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			escapeXML(item.URL), item.Left, row.Top, item.Width, row.Height)
	} else {
		fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			item.Left, row.Top, item.Width, row.Height, placeholderFill(item.ID))
	}

	if r.shading && item.Crop != nil {
		fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="url(#crop-hatch)"/>`+"\n",
			item.Left, row.Top, item.Width, row.Height)
	}

	if item.Title != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", escapeXML(item.Title))
	}

	buf.WriteString("  </g>\n")
}

// placeholderFill picks a stable palette color for an item ID.
func placeholderFill(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
