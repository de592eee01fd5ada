package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernvale/mosaic/pkg/cache"
	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/pipeline"
)

// layoutCommand creates the layout command for computing gallery layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configFile string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [gallery.json]",
		Short: "Compute a justified layout for a photo gallery",
		Long: `Compute a justified layout for a photo gallery.

The layout command takes a gallery.json file (photo IDs plus pixel
dimensions) and partitions it into rows whose aggregate aspect ratios fall
inside the configured band, then scales every row to fill the container
width exactly. The output is a layout.json file that can be rendered to
SVG/HTML/JSON using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			cfg.applyTo(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configFile, "config", "", "TOML config file (default: XDG config dir)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().IntVarP(&opts.Width, "width", "w", 0, "container width in pixels (default 960)")
	cmd.Flags().IntVar(&opts.Border, "border", 0, "gap between items in pixels (default 1)")
	cmd.Flags().BoolVar(&opts.NoBorder, "no-border", false, "lay out items with no gap")
	cmd.Flags().Float64Var(&opts.BandMin, "band-min", 0, "minimum row aspect ratio (default 1.8)")
	cmd.Flags().Float64Var(&opts.BandMax, "band-max", 0, "maximum row aspect ratio (default 3.6)")
	cmd.Flags().IntVar(&opts.MaxCombos, "max-combos", 0, "row combination search cap (default 24)")
	cmd.Flags().IntVar(&opts.MaxRows, "max-rows", 0, "lookahead depth per combination (default 3)")
	cmd.Flags().BoolVar(&opts.Randomize, "randomize", false, "break score ties randomly")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for tie-breaking (default 42)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even on a cache hit")

	return cmd
}

// runLayout loads the gallery, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := gallery.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load gallery %s: %w", input, err)
	}
	if len(g.Photos) == 0 {
		printWarning("Gallery %s has no photos", input)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d photos", len(g.Photos)))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := gallery.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Photos), len(l.Rows), cacheHit)
	if data, err := gallery.MarshalLayout(l); err == nil {
		printKeyValue("layout", cache.Hash(data))
	}
	printNewline()
	printNextStep("Render", "mosaic render "+outputPath)

	return nil
}
