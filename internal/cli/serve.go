package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardfit/internal/server"
	"github.com/matzehuels/boardfit/pkg/cache"
	"github.com/matzehuels/boardfit/pkg/pipeline"
)

// defaultServeAddr is the default listen address for the HTTP API.
const defaultServeAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		mongoURI    string
		mongoDB     string
		redisURL    string
		cachePrefix string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placement HTTP API",
		Long: `Run the placement HTTP API.

Storage defaults to in-memory; pass --mongo-uri for records that survive
restarts. Caching defaults to the local file cache; pass --redis-url when
several instances should share solve results and artifacts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, mongoURI, mongoDB, redisURL, cachePrefix, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI for persistent records")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "MongoDB database name (default boardfit)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for a shared cache")
	cmd.Flags().StringVar(&cachePrefix, "cache-prefix", "", "prefix for cache keys when sharing a backend")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the store and cache backends and blocks serving HTTP
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, mongoURI, mongoDB, redisURL, cachePrefix string, noCache bool) error {
	cch, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cachePrefix)
	}
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	var store server.Store
	if mongoURI != "" {
		store, err = server.NewMongoStore(ctx, mongoURI, mongoDB)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		c.Logger.Info("using mongodb store", "database", mongoDB)
	} else {
		store = server.NewMemoryStore()
		c.Logger.Warn("using in-memory store; records do not survive restarts")
	}

	srv := server.New(runner, store, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}

// serveCache picks the cache backend for the API process.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		cch, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		c.Logger.Info("using redis cache")
		return cch, nil
	}
	return newCache(false)
}
