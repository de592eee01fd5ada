package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernvale/mosaic/internal/server"
	"github.com/fernvale/mosaic/pkg/cache"
	"github.com/fernvale/mosaic/pkg/pipeline"
	"github.com/fernvale/mosaic/pkg/store"
)

// defaultServeAddr is the listen address when neither flag nor config set one.
const defaultServeAddr = ":8080"

// serveCommand creates the serve command for the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configFile string
		srvCfg     ServeConfig
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  GET  /healthz                    liveness probe
  POST /v1/layout                  compute a layout for a posted gallery
  GET  /v1/layout/{hash}           fetch a stored layout by gallery hash
  GET  /v1/layout/{hash}/artifact  render a stored layout

With --redis the layout and artifact caches are shared across instances;
without it the local file cache is used. With --mongo-uri computed layouts
are persisted and the GET routes become available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			mergeServeConfig(&srvCfg, cfg.Serve)
			return c.runServe(cmd.Context(), srvCfg, noCache)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "TOML config file (default: XDG config dir)")
	cmd.Flags().StringVar(&srvCfg.Addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&srvCfg.RedisAddr, "redis", "", "Redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&srvCfg.RedisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&srvCfg.RedisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&srvCfg.MongoURI, "mongo-uri", "", "MongoDB URI for layout persistence")
	cmd.Flags().StringVar(&srvCfg.MongoDatabase, "mongo-db", "", "MongoDB database name (default mosaic)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// mergeServeConfig fills unset flag values from the config file.
func mergeServeConfig(dst *ServeConfig, src ServeConfig) {
	if dst.Addr == "" {
		dst.Addr = src.Addr
	}
	if dst.RedisAddr == "" {
		dst.RedisAddr = src.RedisAddr
		dst.RedisPassword = src.RedisPassword
		dst.RedisDB = src.RedisDB
	}
	if dst.MongoURI == "" {
		dst.MongoURI = src.MongoURI
		dst.MongoDatabase = src.MongoDatabase
	}
	if dst.Addr == "" {
		dst.Addr = defaultServeAddr
	}
}

// runServe wires the cache, optional store, and server, then blocks until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg ServeConfig, noCache bool) error {
	srvCache, err := c.newServeCache(ctx, cfg, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(srvCache, nil, c.Logger)
	defer runner.Close()

	var layoutStore *store.LayoutStore
	if cfg.MongoURI != "" {
		layoutStore, err = store.Connect(ctx, store.Config{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return fmt.Errorf("connect layout store: %w", err)
		}
		defer layoutStore.Close(context.Background())
		c.Logger.Info("layout store connected", "database", cfg.MongoDatabase)
	}

	srv := server.New(server.Config{
		Addr:   cfg.Addr,
		Runner: runner,
		Store:  layoutStore,
		Logger: c.Logger,
	})
	return srv.Start(ctx)
}

// newServeCache picks the cache backend: Redis when configured, otherwise
// the local file cache shared with the other commands.
func (c *CLI) newServeCache(ctx context.Context, cfg ServeConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", cfg.RedisAddr)
		return rc, nil
	}
	return newCache(false)
}
