package render

import (
	"bytes"
	"fmt"

	"github.com/fernvale/mosaic/pkg/gallery"
)

const htmlStyle = `    .mosaic { position: relative; margin: 0 auto; }
    .mosaic .item { position: absolute; overflow: hidden; background: #e3e3e6; }
    .mosaic .item img { width: 100%%; height: 100%%; object-fit: cover; display: block; }`

// RenderHTML renders the layout as a standalone HTML page. Items are
// absolutely positioned inside a relative container, which reproduces
// the computed geometry pixel for pixel.
func RenderHTML(l gallery.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	title := r.title
	if title == "" {
		title = "Gallery"
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&buf, "  <meta charset=\"utf-8\">\n  <title>%s</title>\n", escapeXML(title))
	fmt.Fprintf(&buf, "  <style>\n"+htmlStyle+"\n  </style>\n")
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, `  <div class="mosaic" style="width:%dpx;height:%dpx">`+"\n", l.ContainerWidth, l.Height)

	for _, row := range l.Rows {
		for _, item := range row.Items {
			renderHTMLItem(&buf, &r, row, item)
		}
	}

	buf.WriteString("  </div>\n</body>\n</html>\n")
	return buf.Bytes()
}

func renderHTMLItem(buf *bytes.Buffer, r *renderer, row gallery.LayoutRow, item gallery.LayoutItem) {
	fmt.Fprintf(buf, `    <div class="item" data-id="%s" style="left:%dpx;top:%dpx;width:%dpx;height:%dpx"`,
		escapeXML(item.ID), item.Left, row.Top, item.Width, row.Height)
	if item.Title != "" {
		fmt.Fprintf(buf, ` title="%s"`, escapeXML(item.Title))
	}
	buf.WriteString(">")

	if r.images && item.URL != "" {
		alt := item.Title
		if alt == "" {
			alt = item.ID
		}
		fmt.Fprintf(buf, `<img src="%s" alt="%s">`, escapeXML(item.URL), escapeXML(alt))
	} else {
		fmt.Fprintf(buf, `<div style="width:100%%;height:100%%;background:%s"></div>`, placeholderFill(item.ID))
	}

	buf.WriteString("</div>\n")
}
