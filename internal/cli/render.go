package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/pipeline"
	"github.com/fernvale/mosaic/pkg/render"
)

// renderCommand creates the render command for generating layout artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		configFile string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout to SVG, HTML, or JSON",
		Long: `Render a computed layout to one or more artifact formats.

The render command takes a layout.json file (produced by 'layout') and
generates artifacts from it. SVG and HTML artifacts position placeholder
boxes unless the gallery carried photo URLs, in which case --images embeds
them with cover-fit cropping.

Artifacts are cached by layout content hash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if formatsStr != "" {
				opts.Formats = parseFormats(formatsStr)
			}
			cfg.applyTo(&opts)
			if len(opts.Formats) == 0 {
				opts.Formats = parseFormats("")
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&configFile, "config", "", "TOML config file (default: XDG config dir)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "gallery title embedded in artifacts")
	cmd.Flags().BoolVar(&opts.Images, "images", false, "embed photo URLs instead of placeholder boxes")
	cmd.Flags().BoolVar(&opts.CropShading, "crop-shading", false, "hatch cropped regions in SVG output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even on a cache hit")

	return cmd
}

// runRender loads the layout and writes one artifact file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := gallery.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering artifacts...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := artifactBasePath(output, input)
	for _, format := range opts.Formats {
		path := artifactPath(base, output, format, len(opts.Formats))
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %d artifact(s)", len(opts.Formats))
	printStats(0, len(l.Rows), cacheHit)

	return nil
}

// artifactBasePath derives the base output path from the output and input
// file paths. A ".layout" suffix left over from the layout command is
// stripped so "photos.layout.json" renders to "photos.svg".
func artifactBasePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if err := render.ValidateFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath builds the output path for one format. A single requested
// format honors an explicit --output verbatim.
func artifactPath(base, output, format string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	return base + "." + format
}
