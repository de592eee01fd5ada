package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/fernvale/mosaic/pkg/cache"
	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/layout"
	"github.com/fernvale/mosaic/pkg/render"
)

func testGallery(n int) gallery.Gallery {
	g := gallery.Gallery{Photos: make([]gallery.Photo, n)}
	dims := [][2]int{{800, 600}, {600, 800}, {1000, 400}, {500, 500}}
	for i := range g.Photos {
		d := dims[i%len(dims)]
		g.Photos[i] = gallery.Photo{
			ID:     "photo-" + string(rune('a'+i)),
			Width:  d[0],
			Height: d[1],
		}
	}
	return g
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Width != DefaultWidth {
		t.Errorf("Width = %d, want %d", opts.Width, DefaultWidth)
	}
	if opts.Border != DefaultBorder {
		t.Errorf("Border = %d, want %d", opts.Border, DefaultBorder)
	}
	if opts.BandMin != layout.DefaultBandMin || opts.BandMax != layout.DefaultBandMax {
		t.Errorf("band = [%g,%g], want engine defaults", opts.BandMin, opts.BandMax)
	}
	if opts.MaxCombos != layout.DefaultMaxCombos || opts.MaxRows != layout.DefaultMaxRows {
		t.Errorf("search caps = %d/%d, want engine defaults", opts.MaxCombos, opts.MaxRows)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != render.FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsNoBorder(t *testing.T) {
	opts := Options{NoBorder: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Border != 0 {
		t.Errorf("Border = %d, want 0 with NoBorder", opts.Border)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "NegativeWidth", opts: Options{Width: -1}},
		{name: "NegativeBorder", opts: Options{Border: -2}},
		{name: "InvertedBand", opts: Options{BandMin: 3.6, BandMax: 1.8}},
		{name: "UnknownFormat", opts: Options{Formats: []string{"png"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Width: 720}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != 720 {
		t.Errorf("Width = %d, want 720 preserved", opts.Width)
	}
}

func TestGenerateLayout(t *testing.T) {
	g := testGallery(8)
	l, err := GenerateLayout(g, Options{Width: 960})
	if err != nil {
		t.Fatal(err)
	}

	if l.GalleryHash != g.Hash() {
		t.Error("layout should record the gallery hash")
	}
	if l.ContainerWidth != 960 {
		t.Errorf("container width = %d, want 960", l.ContainerWidth)
	}
	if len(l.Rows) == 0 {
		t.Fatal("no rows computed")
	}

	covered := 0
	for _, row := range l.Rows {
		covered += len(row.Items)
	}
	if covered != 8 {
		t.Errorf("rows cover %d photos, want 8", covered)
	}
}

func TestGenerateLayoutRecordsSeed(t *testing.T) {
	g := testGallery(6)

	plain, err := GenerateLayout(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if plain.Randomize || plain.Seed != 0 {
		t.Errorf("deterministic layout should not record a seed: %+v", plain)
	}

	random, err := GenerateLayout(g, Options{Randomize: true, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !random.Randomize || random.Seed != 7 {
		t.Errorf("randomized layout should record the seed: randomize=%v seed=%d", random.Randomize, random.Seed)
	}
}

func TestGenerateLayoutRejectsBadGallery(t *testing.T) {
	g := gallery.Gallery{Photos: []gallery.Photo{{ID: "a", Width: 0, Height: 100}}}
	_, err := GenerateLayout(g, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidGallery) {
		t.Errorf("error = %v, want INVALID_GALLERY", err)
	}
}

func TestRenderFromLayout(t *testing.T) {
	g := testGallery(4)
	l, err := GenerateLayout(g, Options{})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayout(l, Options{Formats: []string{"svg", "html", "json"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []string{"svg", "html", "json"} {
		if len(artifacts[format]) == 0 {
			t.Errorf("no %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(artifacts["svg"]), "<svg") {
		t.Error("svg artifact should start with an <svg> element")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	g := testGallery(10)
	opts := Options{Formats: []string{"svg", "json"}}

	first, err := runner.Execute(ctx, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.PhotoCount != 10 || first.Stats.RowCount == 0 {
		t.Errorf("stats = %+v, want photo and row counts", first.Stats)
	}
	if len(first.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(first.Artifacts))
	}
	if first.GalleryHash == "" || first.LayoutHash == "" {
		t.Error("hashes should be recorded")
	}

	second, err := runner.Execute(ctx, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(second.Artifacts["svg"]) != string(first.Artifacts["svg"]) {
		t.Error("cached artifact should be identical")
	}

	// Refresh bypasses the cache
	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := runner.Execute(ctx, g, refreshOpts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerExecuteEmptyGallery(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), gallery.Gallery{}, Options{})
	if err != nil {
		t.Fatalf("empty gallery should not error, got %v", err)
	}
	if len(result.Layout.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(result.Layout.Rows))
	}
	if len(result.Artifacts["svg"]) == 0 {
		t.Error("empty gallery should still render an empty frame")
	}
}

func TestRunnerNilCollaborators(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	if runner.Cache == nil || runner.Keyer == nil || runner.Logger == nil {
		t.Error("NewRunner should fill nil collaborators with defaults")
	}
}

func TestRunnerScopedKeyerIsolation(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fc.Close()

	g := testGallery(5)
	opts := Options{}

	userA := NewRunner(fc, cache.NewScopedKeyer(nil, "user:a:"), nil)
	if _, err := userA.Execute(ctx, g, opts); err != nil {
		t.Fatal(err)
	}

	// A different scope must not see user A's entries.
	userB := NewRunner(fc, cache.NewScopedKeyer(nil, "user:b:"), nil)
	result, err := userB.Execute(ctx, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("scoped keyers should isolate cache entries")
	}
}
