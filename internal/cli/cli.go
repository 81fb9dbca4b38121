// Package cli implements the gridgen command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridgen/pkg/cache"
	"github.com/matzehuels/gridgen/pkg/config"
	"github.com/matzehuels/gridgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridgen"

	// redisKeyPrefix scopes keys when the cache is shared through redis.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set from persistent flags.
	ConfigPath string
	CacheURL   string
	NoCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads --config, or the default config file if there is one.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path, "layouts", len(cfg.Layouts))
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use, along with the config
// its compiler was built from.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, *config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	compiler, err := cfg.Compiler()
	if err != nil {
		return nil, nil, err
	}
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(store, keyer, compiler, c.Logger), cfg, nil
}

// newCache picks the cache backend: none with --no-cache, redis with
// --cache-url, the XDG file cache otherwise.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	if c.NoCache {
		return cache.NewNullCache(), nil, nil
	}
	if c.CacheURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.CacheURL)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "url", c.CacheURL)
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gridgen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
