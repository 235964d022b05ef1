package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vitalvas/actionroute/logging"
	"github.com/vitalvas/actionroute/routecache"
	"github.com/vitalvas/actionroute/routeconfig"
	"github.com/vitalvas/actionroute/routes"
)

var configPath string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "routectl",
		Short:         "Inspect and serve action routes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (defaults are used when empty)")

	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// app bundles what every command needs.
type app struct {
	cfg     *routeconfig.Config
	logger  *zap.Logger
	cache   *routecache.Cache
	manager *routes.Manager
}

func loadConfig() (*routeconfig.Config, error) {
	if configPath == "" {
		cfg := routeconfig.Default()
		return cfg, cfg.Validate()
	}

	return routeconfig.Load(configPath)
}

// newApp loads configuration, builds the cache and, when withRoutes is set,
// the route manager.
func newApp(ctx context.Context, withRoutes bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	cache, err := routeconfig.NewCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, cache: cache}
	if !withRoutes {
		return a, nil
	}

	a.manager, err = routes.New(ctx, routeconfig.FileSource{Path: cfg.RoutesFile}, cache, cfg.RouteOptions(logger)...)
	if err != nil {
		cache.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) close() {
	a.cache.Close()
	a.logger.Sync()
}
