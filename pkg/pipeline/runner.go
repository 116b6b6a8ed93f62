package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidie/pkg/builds"
	"github.com/matzehuels/slidie/pkg/cache"
	"github.com/matzehuels/slidie/pkg/deck"
	"github.com/matzehuels/slidie/pkg/observability"
)

// Runner executes pipelines with output caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → evaluate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Path, 0, time.Since(loadStart), err)
		return nil, err
	}
	result.Deck = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.LayerCount = len(d.Layers)
	hooks.OnLoadComplete(ctx, d.Name, len(d.Layers), result.Stats.LoadTime, nil)

	logger.Info("loaded deck",
		"deck", d.Name,
		"layers", len(d.Layers),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Evaluate
	evalStart := time.Now()
	err = r.evaluate(result, opts)
	result.Stats.EvaluateTime = time.Since(evalStart)
	hooks.OnEvaluateComplete(ctx, d.Name, result.Stats.StepCount, result.Stats.EvaluateTime, err)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	logger.Info("resolved builds",
		"steps", result.Stats.StepCount,
		"tags", result.Stats.TagCount,
		"duration", result.Stats.EvaluateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	out, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Format, len(out), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = out
	result.Cached = hit

	logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(out),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Deck if set and reads opts.Path otherwise.
func (r *Runner) Load(ctx context.Context, opts Options) (*deck.Deck, error) {
	if opts.Deck != nil {
		return opts.Deck, nil
	}
	return deck.Load(opts.Path)
}

// evaluate fills in the resolution, and for graph formats the dependency
// graph, of result.Deck.
func (r *Runner) evaluate(result *Result, opts Options) error {
	layers := result.Deck.Layers

	if opts.IsGraph() {
		g, err := builds.Dependencies(layers)
		if err != nil {
			return err
		}
		result.Graph = g
	}

	res, err := builds.Evaluate(layers)
	if err != nil {
		var cyclic *builds.CyclicDependencyError
		if opts.IsGraph() && errors.As(err, &cyclic) {
			opts.Logger.Warn("deck has cyclic tag references", "cycle", cyclic.Error())
			return nil
		}
		return err
	}
	result.Resolution = res
	result.Stats.StepCount = len(res.StepNumbers())
	result.Stats.TagCount = len(res.TagSteps())
	return nil
}

// RenderWithCacheInfo renders result in opts.Format, using the cache unless
// opts.Refresh is set. hit reports whether the output came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (out []byte, hit bool, err error) {
	key := cache.OutputKey(outputVariant(result.Deck, opts), result.Deck.Layers)
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, opts.Format)
			return data, true, nil
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, opts.Format)
	}

	out, err = Render(ctx, result, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, out, cache.TTLOutput); err != nil {
		opts.Logger.Debug("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, opts.Format, len(out))
	}
	return out, false, nil
}

// outputVariant identifies everything besides the layer names which the
// rendered output depends on.
func outputVariant(d *deck.Deck, opts Options) string {
	return fmt.Sprintf("%s|%s|color=%t|detailed=%t", opts.Format, d.Name, opts.Color, opts.Detailed)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
