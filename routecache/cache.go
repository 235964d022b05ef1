package routecache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/actionroute/routes"
)

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
	Saves  int64
}

// Cache stores route tables in a Store. It implements routes.Cache.
type Cache struct {
	store  Store
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
	saves  atomic.Int64
}

var _ routes.Cache = (*Cache)(nil)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Cache over store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Exists reports whether a table is stored under key.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := c.store.Exists(ctx, key)
	if err != nil {
		return false, err
	}

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	return ok, nil
}

// Load decodes the table stored under key.
func (c *Cache) Load(ctx context.Context, key string) (*routes.Table, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var table routes.Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("routecache: decode %q: %w", key, err)
	}

	c.logger.Debug("route table read", zap.String("key", key), zap.Int("bytes", len(data)))

	return &table, nil
}

// Save encodes table and stores it under key.
func (c *Cache) Save(ctx context.Context, key string, table *routes.Table) error {
	if table == nil {
		return errors.New("routecache: nil table")
	}

	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("routecache: encode %q: %w", key, err)
	}

	if err := c.store.Set(ctx, key, data); err != nil {
		return err
	}

	c.saves.Add(1)
	c.logger.Debug("route table written", zap.String("key", key), zap.Int("bytes", len(data)))

	return nil
}

// Delete removes the entry under key. Deleting an absent key succeeds.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}

	c.logger.Info("route table invalidated", zap.String("key", key))

	return nil
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Saves:  c.saves.Load(),
	}
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
