// Package pipeline provides the core layout pipeline for Mosaic.
//
// This package implements the complete layout → render pipeline that can
// be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Partition the gallery into rows and compute exact geometry
//  2. Render: Generate output in various formats (SVG, HTML, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are cached: layouts by gallery hash plus layout options,
// artifacts by layout hash plus render options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:   960,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.ComputeLayout(ctx, g, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fernvale/mosaic/pkg/cache"
	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/layout"
	"github.com/fernvale/mosaic/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 960

	// DefaultBorder is the default gap between items in pixels.
	DefaultBorder = 1

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// DefaultFormat is the default output format.
const DefaultFormat = render.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width     int     `json:"width,omitempty"`
	Border    int     `json:"border,omitempty"`
	NoBorder  bool    `json:"no_border,omitempty"` // Force a zero gap (Border 0 means "use default")
	BandMin   float64 `json:"band_min,omitempty"`
	BandMax   float64 `json:"band_max,omitempty"`
	MaxCombos int     `json:"max_combos,omitempty"`
	MaxRows   int     `json:"max_rows,omitempty"`
	Randomize bool    `json:"randomize,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
	Refresh   bool    `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	Images      bool     `json:"images,omitempty"`
	CropShading bool     `json:"crop_shading,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Selector layout.Selector `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GalleryHash is the content hash of the input gallery.
	GalleryHash string

	// Layout contains the computed geometry.
	Layout gallery.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PhotoCount int
	RowCount   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats name a supported sink.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Border == 0 && !o.NoBorder {
		o.Border = DefaultBorder
	}
	if o.NoBorder {
		o.Border = 0
	}
	if o.BandMin == 0 {
		o.BandMin = layout.DefaultBandMin
	}
	if o.BandMax == 0 {
		o.BandMax = layout.DefaultBandMax
	}
	if o.MaxCombos == 0 {
		o.MaxCombos = layout.DefaultMaxCombos
	}
	if o.MaxRows == 0 {
		o.MaxRows = layout.DefaultMaxRows
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateContainerWidth(o.Width); err != nil {
		return err
	}
	if o.Border < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "border must not be negative, got %d", o.Border)
	}
	return errors.ValidateBand(o.BandMin, o.BandMax)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutConfig builds the engine configuration from the options.
// The tie-break selector resolves in priority order: an explicit
// Selector, the seeded random selector when Randomize is set, otherwise
// the engine's deterministic first-seen default.
func (o *Options) LayoutConfig() layout.Config {
	cfg := layout.Config{
		Band:       layout.Band{Min: o.BandMin, Max: o.BandMax},
		BorderSize: o.Border,
		MaxCombos:  o.MaxCombos,
		MaxRows:    o.MaxRows,
		Selector:   o.Selector,
	}
	if cfg.Selector == nil && o.Randomize {
		cfg.Selector = layout.NewRandomSelector(o.Seed)
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Border:    o.Border,
		BandMin:   o.BandMin,
		BandMax:   o.BandMax,
		MaxCombos: o.MaxCombos,
		MaxRows:   o.MaxRows,
		Randomize: o.Randomize,
		Seed:      o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Title:   o.Title,
		Images:  o.Images,
		Shading: o.CropShading,
	}
}

// RenderOptions builds the sink option list from the options.
func (o *Options) RenderOptions() []render.Option {
	var opts []render.Option
	if o.Title != "" {
		opts = append(opts, render.WithTitle(o.Title))
	}
	if o.Images {
		opts = append(opts, render.WithImages())
	}
	if o.CropShading {
		opts = append(opts, render.WithCropShading())
	}
	return opts
}
