// Package routeconfig loads the router's configuration file, reads the
// declarative routes document and wires the cache backend it names.
package routeconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/actionroute/logging"
)

// Cache backend types.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// DefaultRoutesFile is the routes document used when none is configured.
const DefaultRoutesFile = "config/routes.yml"

// Config is the top-level configuration document.
type Config struct {
	RoutesFile  string            `yaml:"routes_file"`
	Cache       CacheConfig       `yaml:"cache"`
	Conventions ConventionsConfig `yaml:"conventions"`
	Log         logging.Config    `yaml:"log"`
	Server      ServerConfig      `yaml:"server"`
}

// CacheConfig selects where route table snapshots are kept.
type CacheConfig struct {
	// Type is one of memory, file, redis.
	Type string `yaml:"type"`

	// Dir holds cache files for the file backend.
	Dir string `yaml:"dir"`

	// RedisURL is a redis:// URL for the redis backend.
	RedisURL string `yaml:"redis_url"`

	// KeyPrefix namespaces keys in a shared redis.
	KeyPrefix string `yaml:"key_prefix"`

	// Key overrides routes.CacheKey.
	Key string `yaml:"key"`
}

// ConventionsConfig lists controllers routed by convention, i.e.
// /controller/action without an explicit declaration.
type ConventionsConfig struct {
	Method      string              `yaml:"method"`
	Controllers map[string][]string `yaml:"controllers"`
}

// ServerConfig configures the HTTP front controller.
type ServerConfig struct {
	Listen      string `yaml:"listen"`
	MetricsPath string `yaml:"metrics_path"`
	WatchRoutes bool   `yaml:"watch_routes"`
}

// Default returns the configuration used for absent fields.
func Default() *Config {
	return &Config{
		RoutesFile: DefaultRoutesFile,
		Cache: CacheConfig{
			Type: CacheFile,
			Dir:  "var/cache/files",
		},
		Conventions: ConventionsConfig{
			Method: "GET",
		},
		Log: logging.DefaultConfig(),
		Server: ServerConfig{
			Listen:      ":8080",
			MetricsPath: "/metrics",
		},
	}
}

// Load reads the configuration file at path over Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routeconfig: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("routeconfig: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first inconsistency in c.
func (c *Config) Validate() error {
	if c.RoutesFile == "" {
		return errors.New("routeconfig: routes_file must not be empty")
	}

	switch c.Cache.Type {
	case CacheMemory:
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New("routeconfig: cache.dir is required for the file cache")
		}
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New("routeconfig: cache.redis_url is required for the redis cache")
		}
	default:
		return fmt.Errorf("routeconfig: unknown cache type %q", c.Cache.Type)
	}

	if len(c.Conventions.Controllers) > 0 && c.Conventions.Method == "" {
		return errors.New("routeconfig: conventions.method must not be empty")
	}

	return nil
}
