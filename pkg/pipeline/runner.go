package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netmap/pkg/cache"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and hooks - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, hooks observability.Hooks) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Hooks:  hooks.WithDefaults(),
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, ds graph.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	result := &Result{
		Stats: Stats{NodeCount: ds.NodeCount(), LinkCount: ds.LinkCount()},
	}

	layoutStart := time.Now()
	l, hash, layoutHit, err := r.layout(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.DatasetHash = hash
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"algorithm", l.Algorithm,
		"nodes", len(l.Positions),
		"levels", l.MaxLevel+1,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, ds graph.Dataset, opts Options) (graph.Layout, bool, error) {
	l, _, hit, err := r.layout(ctx, ds, opts)
	return l, hit, err
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, ds graph.Dataset, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, ds, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, ds graph.Dataset, opts Options) (graph.Layout, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, "", false, err
	}

	hash, err := cache.HashDataset(ds)
	if err != nil {
		return graph.Layout{}, "", false, err
	}
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				r.Hooks.Cache.OnCacheHit(ctx, keyTypeLayout)
				return cached, hash, true, nil
			}
		}
		r.Hooks.Cache.OnCacheMiss(ctx, keyTypeLayout)
	}

	l, report, err := ComputeLayout(ctx, ds, opts, r.Hooks)
	if err != nil {
		return graph.Layout{}, hash, false, err
	}
	if report.DroppedNodes > 0 || report.DroppedLinks > 0 {
		r.Logger.Warn("dropped inconsistent records",
			"nodes", report.DroppedNodes,
			"links", report.DroppedLinks)
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Debug("cache write failed", "key", keyTypeLayout, "error", err)
		} else {
			r.Hooks.Cache.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}
	return l, hash, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			r.Hooks.Cache.OnCacheMiss(ctx, keyTypeArtifact)
			break
		}
		r.Hooks.Cache.OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			r.Hooks.Cache.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
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
