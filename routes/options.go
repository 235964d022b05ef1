package routes

import "go.uber.org/zap"

type options struct {
	logger      *zap.Logger
	cacheKey    string
	conventions []Route
}

func defaultOptions() options {
	return options{
		logger:   zap.NewNop(),
		cacheKey: CacheKey,
	}
}

// Option configures a Loader or Manager.
type Option func(*options)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCacheKey overrides CacheKey. An empty key is ignored.
func WithCacheKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.cacheKey = key
		}
	}
}

// WithConventions appends convention-derived routes after the declarative
// ones when a table is loaded from its source. Declared identifiers win;
// a convention route whose identifier is already declared is skipped.
func WithConventions(routes ...Route) Option {
	return func(o *options) {
		o.conventions = append(o.conventions, routes...)
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
