package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridgen/pkg/cache"
	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/grid"
	"github.com/matzehuels/gridgen/pkg/lint"
	"github.com/matzehuels/gridgen/pkg/observability"
)

// keyType labels cache hook events.
const keyType = "output"

// Runner executes compiles with caching. It holds no per-run state and is
// safe for concurrent use.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Compiler *grid.Compiler
	Logger   *log.Logger
}

// NewRunner creates a runner. Nil arguments get defaults: a NullCache,
// the DefaultKeyer, grid.DefaultCompiler and log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, compiler *grid.Compiler, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if compiler == nil {
		compiler = grid.DefaultCompiler()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Compiler: compiler, Logger: logger}
}

// Execute compiles opts, consulting the cache unless opts.Refresh is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	res := &Result{ID: uuid.NewString(), Mode: opts.Mode}
	key := r.Keyer.OutputKey(r.keyOpts(opts))

	out, hit := r.lookup(ctx, key, opts)
	if !hit {
		start := time.Now()
		var err error
		out, err = r.compile(ctx, opts)
		if err != nil {
			return nil, err
		}
		res.Stats.CompileTime = time.Since(start)
		r.store(ctx, key, out, logger)
	}
	res.CacheInfo.Hit = hit

	if opts.Verify {
		err := lint.Check(out, opts.Container)
		observability.Pipeline().OnVerify(ctx, err)
		if err != nil {
			return nil, err
		}
		logger.Debug("verified output", "mode", opts.Mode)
	}

	res.Stats.Rows = out.Rows
	res.Stats.Columns = out.Columns
	res.Stats.Selectors = len(out.Placements)
	if res.Stats.Selectors == 0 {
		res.Stats.Selectors = out.Rows * out.Columns
	}

	switch {
	case opts.OnlyMarkup:
		out.Stylesheet = ""
	case opts.OnlyStylesheet:
		out.Markup = ""
	}
	res.Output = out

	logger.Info("compiled grid",
		"mode", opts.Mode,
		"input", opts.Input(),
		"selectors", res.Stats.Selectors,
		"cached", hit,
		"duration", res.Stats.CompileTime)
	return res, nil
}

// Compile runs the compiler for opts without touching the cache.
func (r *Runner) Compile(ctx context.Context, opts Options) (grid.Output, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return grid.Output{}, err
	}
	return r.compile(ctx, opts)
}

func (r *Runner) compile(ctx context.Context, opts Options) (grid.Output, error) {
	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, opts.Mode, opts.Input())
	start := time.Now()

	var (
		out grid.Output
		err error
	)
	switch opts.Mode {
	case ModeQuery:
		out, err = r.Compiler.FromQuery(opts.Query, opts.Container, opts.Spacing, opts.Highlight)
	case ModeLayout:
		out, err = r.Compiler.FromLayout(opts.Layout, opts.Container)
	case ModeDimensions:
		out, err = r.Compiler.FromDimensions(opts.Columns, opts.Rows, opts.Container)
	default:
		err = ValidateMode(opts.Mode)
	}

	hooks.OnCompileComplete(ctx, opts.Mode, len(out.Placements), time.Since(start), err)
	return out, err
}

// lookup returns a cached output. Undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key string, opts Options) (grid.Output, bool) {
	hooks := observability.Cache()
	if opts.Refresh {
		hooks.OnCacheMiss(ctx, keyType)
		return grid.Output{}, false
	}

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return grid.Output{}, false
	}

	var out grid.Output
	if err := cache.Decode(data, &out); err != nil {
		opts.Logger.Debug("discarding undecodable cache entry", "key", key, "err", err)
		hooks.OnCacheMiss(ctx, keyType)
		return grid.Output{}, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return out, true
}

// store writes out to the cache. Failures are logged, not returned: the
// compile itself succeeded.
func (r *Runner) store(ctx context.Context, key string, out grid.Output, logger *log.Logger) {
	data, err := cache.Encode(out)
	if err != nil {
		logger.Warn("encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLOutput); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// keyOpts collects everything that determines the output of opts.
func (r *Runner) keyOpts(opts Options) cache.OutputKeyOpts {
	theme := r.Compiler.Theme.WithDefaults()
	k := cache.OutputKeyOpts{
		Mode:       opts.Mode,
		Container:  opts.Container,
		Padding:    theme.Padding,
		Gap:        theme.Gap,
		Background: theme.Background,
	}
	switch opts.Mode {
	case ModeQuery:
		k.Query = opts.Query
		k.Spacing = opts.Spacing
		k.Highlight = opts.Highlight
	case ModeLayout:
		k.Layout = opts.Layout
		if l, ok := r.Compiler.Catalogue.Lookup(opts.Layout); ok {
			def, _ := json.Marshal(l)
			k.Definition = cache.Hash(def)
		}
	case ModeDimensions:
		k.Columns = opts.Columns
		k.Rows = opts.Rows
	}
	return k
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// IsUserError reports whether err was caused by the caller's input rather
// than by the runner itself.
func IsUserError(err error) bool {
	switch errors.GetCode(err) {
	case "", errors.ErrCodeInternal:
		return false
	}
	return true
}
