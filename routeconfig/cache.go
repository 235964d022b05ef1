package routeconfig

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vitalvas/actionroute/routecache"
	"github.com/vitalvas/actionroute/routes"
)

// NewCache builds the cache backend named by cfg.
func NewCache(cfg CacheConfig, logger *zap.Logger) (*routecache.Cache, error) {
	var store routecache.Store

	switch cfg.Type {
	case CacheMemory, "":
		store = routecache.NewMemory()
	case CacheFile:
		store = routecache.NewFile(cfg.Dir)
	case CacheRedis:
		s, err := routecache.NewRedisURL(cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("routeconfig: unknown cache type %q", cfg.Type)
	}

	return routecache.New(store, routecache.WithLogger(logger)), nil
}

// CacheKey returns the configured key or routes.CacheKey.
func (c CacheConfig) CacheKey() string {
	if c.Key == "" {
		return routes.CacheKey
	}

	return c.Key
}

// RouteOptions translates cfg into options for routes.New.
func (c *Config) RouteOptions(logger *zap.Logger) []routes.Option {
	opts := []routes.Option{
		routes.WithLogger(logger),
		routes.WithCacheKey(c.Cache.CacheKey()),
	}

	if len(c.Conventions.Controllers) > 0 {
		opts = append(opts, routes.WithConventions(
			routes.ConventionRoutes(c.Conventions.Method, c.Conventions.Controllers)...,
		))
	}

	return opts
}
