package routes

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Loader produces a route table from the cache, falling back to the
// declarative source and persisting what it loaded.
type Loader struct {
	source Source
	cache  Cache
	opts   options
}

// NewLoader returns a loader. Either source or cache may be nil, but a
// load with neither a cached entry nor a source fails with ErrNoSource.
func NewLoader(source Source, cache Cache, opts ...Option) *Loader {
	return &Loader{
		source: source,
		cache:  cache,
		opts:   applyOptions(opts),
	}
}

// Load returns the cached table if present, verbatim and without
// re-validation. Otherwise it reads the source, expands convention routes,
// saves the result to the cache and returns it.
//
// Concurrent first loads are not coordinated; their cache writes carry the
// same content.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	key := l.opts.cacheKey
	log := l.opts.logger.With(zap.String("key", key))

	if l.cache != nil {
		ok, err := l.cache.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("routes: check cache %q: %w", key, err)
		}

		if ok {
			table, err := l.cache.Load(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("routes: load cache %q: %w", key, err)
			}

			log.Debug("route table loaded from cache", zap.Int("routes", table.Len()))

			return table, nil
		}
	}

	if l.source == nil {
		return nil, &ConfigError{Err: ErrNoSource}
	}

	table, err := l.source.Routes()
	if err != nil {
		return nil, configError("", err)
	}

	table = table.Clone()
	for _, r := range l.opts.conventions {
		if table.Has(r.ID) {
			log.Debug("convention route shadowed by declaration", zap.String("id", r.ID))
			continue
		}

		if err := table.Add(r); err != nil {
			return nil, err
		}
	}

	if l.cache != nil {
		if err := l.cache.Save(ctx, key, table); err != nil {
			return nil, fmt.Errorf("routes: save cache %q: %w", key, err)
		}

		log.Debug("route table saved to cache", zap.Int("routes", table.Len()))
	}

	return table, nil
}
