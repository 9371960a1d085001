package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackviz/pkg/cache"
	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/observability"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// Runner executes the pipeline with artifact caching.
//
// A Runner holds no per-run state, so one Runner can serve several
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of stored artifacts.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// keyer uses the default key scheme.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Execute runs load → update → render → encode.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ds, hash, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.DatasetHash = hash
	result.Stats.Rows = ds.Len()
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded dataset",
		"rows", ds.Len(),
		"fields", len(ds.Fields),
		"duration", result.Stats.LoadTime)

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2-3: Update and render
	updateStart := time.Now()
	sc, err := r.Scene(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Scene = sc
	result.Stats.Marks = sc.Root.Leaves()
	result.Stats.UpdateTime = time.Since(updateStart)

	r.Logger.Info("rendered scene",
		"kind", opts.Kind,
		"marks", result.Stats.Marks,
		"duration", result.Stats.UpdateTime)

	// Stage 4: Encode
	renderStart := time.Now()
	artifacts, err := Encode(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	r.store(ctx, hash, opts, artifacts)

	r.Logger.Info("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scene binds ds to a new chart and renders it once.
func (r *Runner) Scene(ctx context.Context, ds *data.Dataset, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	c, err := Update(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", opts.Kind, err)
	}
	sc, err := c.Render()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Kind, err)
	}
	r.Logger.Debug("chart ready", "id", c.ID(), "kind", c.Kind())
	return sc, nil
}

// Chart returns an updated chart for interactive use. Unlike [Runner.Scene]
// it keeps the configured transition.
func (r *Runner) Chart(ctx context.Context, ds *data.Dataset, opts Options) (chart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	c, err := chart.New(opts.Kind)
	if err != nil {
		return nil, err
	}
	if err := c.Update(ctx, ds, *opts.Config); err != nil {
		return nil, fmt.Errorf("update %s: %w", opts.Kind, err)
	}
	return c, nil
}

// cached returns the artifacts for every requested format, or false if any
// one is missing. Cache errors count as misses.
func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		hooks.OnCacheHit(ctx, "artifact")
		out[format] = data
	}
	return out, true
}

func (r *Runner) store(ctx context.Context, hash string, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
