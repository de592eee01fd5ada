package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fernvale/mosaic/pkg/pipeline"
)

// configFileName is the TOML config file looked up under the XDG config dir.
const configFileName = "mosaic.toml"

// Config is the optional TOML configuration file. Every field maps onto a
// pipeline option; flags given on the command line take precedence.
//
// Example:
//
//	[layout]
//	width = 1200
//	border = 2
//	band_min = 1.8
//	band_max = 3.6
//
//	[render]
//	formats = ["svg", "html"]
//	images = true
//
//	[serve]
//	addr = ":8080"
//	redis_addr = "localhost:6379"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// LayoutConfig holds layout-stage settings.
type LayoutConfig struct {
	Width     int     `toml:"width"`
	Border    int     `toml:"border"`
	NoBorder  bool    `toml:"no_border"`
	BandMin   float64 `toml:"band_min"`
	BandMax   float64 `toml:"band_max"`
	MaxCombos int     `toml:"max_combos"`
	MaxRows   int     `toml:"max_rows"`
	Randomize bool    `toml:"randomize"`
	Seed      uint64  `toml:"seed"`
}

// RenderConfig holds render-stage settings.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	Title       string   `toml:"title"`
	Images      bool     `toml:"images"`
	CropShading bool     `toml:"crop_shading"`
}

// ServeConfig holds settings for the serve command.
type ServeConfig struct {
	Addr          string `toml:"addr"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// loadConfig reads the TOML config from path. When path is empty the XDG
// default is tried, and a missing file there is not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		defaultPath, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyTo copies config file values onto opts, skipping anything the caller
// already set. Zero values in the file are indistinguishable from unset and
// fall through to the pipeline defaults.
func (c Config) applyTo(opts *pipeline.Options) {
	if opts.Width == 0 {
		opts.Width = c.Layout.Width
	}
	if opts.Border == 0 {
		opts.Border = c.Layout.Border
	}
	if !opts.NoBorder {
		opts.NoBorder = c.Layout.NoBorder
	}
	if opts.BandMin == 0 {
		opts.BandMin = c.Layout.BandMin
	}
	if opts.BandMax == 0 {
		opts.BandMax = c.Layout.BandMax
	}
	if opts.MaxCombos == 0 {
		opts.MaxCombos = c.Layout.MaxCombos
	}
	if opts.MaxRows == 0 {
		opts.MaxRows = c.Layout.MaxRows
	}
	if !opts.Randomize {
		opts.Randomize = c.Layout.Randomize
	}
	if opts.Seed == 0 {
		opts.Seed = c.Layout.Seed
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.Render.Formats
	}
	if opts.Title == "" {
		opts.Title = c.Render.Title
	}
	if !opts.Images {
		opts.Images = c.Render.Images
	}
	if !opts.CropShading {
		opts.CropShading = c.Render.CropShading
	}
}
