package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boardfit/pkg/cache"
	"github.com/matzehuels/boardfit/pkg/observability"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/place"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete solve → check → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Seed, result.Stats.Seeded = opts.SeedValue()

	// Stage 1: Solve
	solveStart := time.Now()
	p, stats, solveHit, err := r.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Placement = p
	result.PlacementHash = p.Hash()
	result.Stats.Topologies = stats.Topologies
	result.Stats.Frames = stats.Frames
	result.Stats.Candidates = stats.Candidates
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved placement",
		"frames", stats.Frames,
		"candidates", stats.Candidates,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 2: Check (validate + score, always recomputed)
	checkStart := time.Now()
	rep, breakdown, err := r.Check(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	result.Report = rep
	result.Score = breakdown
	result.Stats.CheckTime = time.Since(checkStart)

	r.Logger.Info("checked placement",
		"valid", rep.Valid,
		"score", breakdown.Total,
		"duration", result.Stats.CheckTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, rep, breakdown, opts)
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

// SolveWithCacheInfo runs the placement search with caching and returns
// cache hit info. Only seeded runs are cached: an unseeded run draws fresh
// entropy each time and is intentionally uncacheable.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (pcb.Placement, place.Stats, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return pcb.Placement{}, place.Stats{}, false, err
	}
	r.applyLogger(&opts)

	seed, seeded := opts.SeedValue()

	var cacheKey string
	if seeded {
		cacheKey = r.Keyer.PlacementKey(seed, opts.PlacementKeyOpts())
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if p, err := pcb.UnmarshalPlacement(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "placement")
				return p, place.Stats{}, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "placement")
	}

	if !seeded {
		seed = rand.Uint64()
	}

	// Solve
	observability.Pipeline().OnSolveStart(ctx, seed)
	solver := opts.Solver()
	p, stats, err := solver.Run(ctx, place.NewRNG(seed))
	observability.Pipeline().OnSolveComplete(ctx, seed, stats.Candidates, stats.Elapsed, err)
	if err != nil {
		return pcb.Placement{}, stats, false, err
	}

	// Cache the result
	if seeded {
		if data, err := pcb.MarshalPlacement(p); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlacement)
			observability.Cache().OnCacheSet(ctx, "placement", len(data))
		}
	}

	return p, stats, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, opts Options) (pcb.Placement, place.Stats, error) {
	p, stats, _, err := r.SolveWithCacheInfo(ctx, opts)
	return p, stats, err
}

// Check validates and scores a placement. The check stage is pure: results
// are always recomputed and never cached.
func (r *Runner) Check(ctx context.Context, p pcb.Placement, opts Options) (constraint.Report, score.Breakdown, error) {
	opts.SetSolveDefaults()

	hash := p.Hash()
	observability.Pipeline().OnValidateStart(ctx, hash)

	start := time.Now()
	rep, err := constraint.Validate(p, opts.Constraints())
	observability.Pipeline().OnValidateComplete(ctx, hash, rep.Valid, time.Since(start), err)
	if err != nil {
		return constraint.Report{}, score.Breakdown{}, err
	}

	return rep, score.Compute(p), nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p pcb.Placement, rep constraint.Report, breakdown score.Breakdown, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	placementHash := p.Hash()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderPlacement(p, rep, breakdown, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p pcb.Placement, rep constraint.Report, breakdown score.Breakdown, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, rep, breakdown, opts)
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
