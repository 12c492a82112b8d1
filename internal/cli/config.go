package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/loomui/loom/pkg/cache"
	"github.com/loomui/loom/pkg/registry"
)

// defaultRegistry is the public component registry.
const defaultRegistry = "https://registry.loomui.dev"

// userConfig is the user-level configuration loaded from
// ~/.config/loom/config.toml. All fields are optional.
type userConfig struct {
	Registry string      `toml:"registry"`
	Cache    cacheConfig `toml:"cache"`
}

// cacheConfig selects and configures the HTTP response cache backend.
type cacheConfig struct {
	Backend       string `toml:"backend"` // file, redis, mongo, none
	TTL           string `toml:"ttl"`     // e.g. "24h"
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// defaultUserConfig returns the configuration used when no config file exists.
func defaultUserConfig() *userConfig {
	return &userConfig{
		Registry: defaultRegistry,
		Cache: cacheConfig{
			Backend:       "file",
			MongoDatabase: appName,
		},
	}
}

// loadUserConfig reads config.toml from the config directory. A missing file
// is not an error; defaults apply for every unset field.
func loadUserConfig() (*userConfig, error) {
	cfg := defaultUserConfig()

	dir, err := configDir()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Registry == "" {
		cfg.Registry = defaultRegistry
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	if cfg.Cache.MongoDatabase == "" {
		cfg.Cache.MongoDatabase = appName
	}
	return cfg, nil
}

// cacheTTL returns the configured cache lifetime, falling back to the client
// default on empty or malformed values.
func (c *userConfig) cacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return registry.DefaultCacheTTL
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return registry.DefaultCacheTTL
	}
	return d
}

// newCache builds the cache backend selected by the config. noCache forces
// the null backend regardless of configuration.
func newCache(cfg *userConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case "redis":
		addr := cfg.Cache.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(context.Background(), addr)
	case "mongo":
		if cfg.Cache.MongoURI == "" {
			return nil, fmt.Errorf("cache backend mongo requires mongo_uri")
		}
		return cache.NewMongoCache(context.Background(), cfg.Cache.MongoURI, cfg.Cache.MongoDatabase, "http_cache")
	default:
		return nil, fmt.Errorf("unknown cache backend %q (expected file, redis, mongo or none)", cfg.Cache.Backend)
	}
}
