package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/gallery"
)

func testLayout() gallery.Layout {
	return gallery.Layout{
		GalleryHash:    "abc123",
		ContainerWidth: 301,
		Height:         319,
		BorderSize:     1,
		BandMin:        1.8,
		BandMax:        3.6,
		Rows: []gallery.LayoutRow{
			{
				Top:    0,
				Height: 150,
				Items: []gallery.LayoutItem{
					{ID: "a", Width: 150, Left: 0, Title: "First", URL: "https://img.test/a.jpg"},
					{ID: "b", Width: 150, Left: 151},
				},
			},
			{
				Top:    151,
				Height: 168,
				Items: []gallery.LayoutItem{
					{ID: "c", Width: 301, Left: 0, Crop: &gallery.Crop{X: 0, Y: 22.2, W: 100, H: 55.6}},
				},
			},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testLayout(), WithTitle("Trip")))

	if !strings.Contains(out, `viewBox="0 0 301 319"`) {
		t.Error("SVG should size the viewBox from the layout")
	}
	if !strings.Contains(out, "<title>Trip</title>") {
		t.Error("SVG should carry the document title")
	}
	if !strings.Contains(out, `<rect x="151" y="0" width="150" height="150"`) {
		t.Error("SVG should place items at their exact geometry")
	}
	if !strings.Contains(out, `id="item-c"`) {
		t.Error("SVG should tag each item group with its ID")
	}
	// Without WithImages everything is a placeholder rect
	if strings.Contains(out, "<image") {
		t.Error("SVG should not embed images unless requested")
	}
}

func TestRenderSVGWithImages(t *testing.T) {
	out := string(RenderSVG(testLayout(), WithImages()))

	if !strings.Contains(out, `<image href="https://img.test/a.jpg"`) {
		t.Error("SVG should embed the image for items with a URL")
	}
	// Items without a URL still get placeholders
	if !strings.Contains(out, `<rect x="151"`) {
		t.Error("SVG should fall back to a placeholder without a URL")
	}
}

func TestRenderSVGCropShading(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	if strings.Contains(plain, "crop-hatch") {
		t.Error("shading should be off by default")
	}

	shaded := string(RenderSVG(testLayout(), WithCropShading()))
	if !strings.Contains(shaded, `<pattern id="crop-hatch"`) {
		t.Error("shaded SVG should define the hatch pattern")
	}
	if strings.Count(shaded, `fill="url(#crop-hatch)"`) != 1 {
		t.Error("only the cropped item should be hatched")
	}
}

func TestRenderSVGEscapesMarkup(t *testing.T) {
	l := testLayout()
	l.Rows[0].Items[0].Title = `<script>"pwn"</script>`

	out := string(RenderSVG(l))
	if strings.Contains(out, "<script>") {
		t.Error("SVG should escape markup in titles")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("SVG should contain the escaped title")
	}
}

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML(testLayout(), WithTitle("Trip"), WithImages()))

	if !strings.Contains(out, "<title>Trip</title>") {
		t.Error("HTML should carry the document title")
	}
	if !strings.Contains(out, `style="width:301px;height:319px"`) {
		t.Error("HTML container should size from the layout")
	}
	if !strings.Contains(out, `style="left:151px;top:0px;width:150px;height:150px"`) {
		t.Error("HTML should position items absolutely")
	}
	if !strings.Contains(out, `<img src="https://img.test/a.jpg" alt="First">`) {
		t.Error("HTML should embed images with alt text")
	}
	if !strings.Contains(out, "object-fit: cover") {
		t.Error("HTML images should cover their boxes")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout(), WithTitle("Trip"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Generator string `json:"generator"`
		Title     string `json:"title"`
		gallery.Layout
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Generator != "mosaic" || out.Title != "Trip" {
		t.Errorf("metadata = %s/%s, want mosaic/Trip", out.Generator, out.Title)
	}
	if out.ContainerWidth != 301 || len(out.Rows) != 2 {
		t.Errorf("layout payload mismatch: %+v", out.Layout)
	}
	if out.Rows[1].Items[0].Crop == nil {
		t.Error("crop regions should survive the JSON round trip")
	}
}

func TestRenderDispatch(t *testing.T) {
	l := testLayout()

	for _, format := range Formats {
		data, err := Render(l, format)
		if err != nil {
			t.Errorf("Render(%s): %v", format, err)
		}
		if len(data) == 0 {
			t.Errorf("Render(%s) produced no output", format)
		}
	}

	_, err := Render(l, "png")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestPlaceholderFillStable(t *testing.T) {
	if placeholderFill("a") != placeholderFill("a") {
		t.Error("placeholder color should be stable per ID")
	}
}
